package main

import (
	"github.com/zan8in/cidrx/pkg/cidrx"
	"github.com/zan8in/gologger"
)

func main() {

	options := cidrx.ParseOptions()

	runner, err := cidrx.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msg(err.Error())
	}

	if err := runner.Run(); err != nil {
		gologger.Fatal().Msg(err.Error())
	}

}
