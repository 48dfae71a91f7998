package main

import (
	"fmt"

	"github.com/zan8in/cidrx/api"
)

func main() {

	rst, err := api.Expand([]string{"192.168.2.0/30"}, false)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	for _, r := range rst {
		fmt.Println(r)
	}

}
