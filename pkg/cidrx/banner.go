package cidrx

import (
	"github.com/zan8in/gologger"
)

var Version = "0.1.0"

func ShowBanner() {
	gologger.Print().Msgf("\n|||\tC I D R X\t|||\t%s\n\n", Version)
}
