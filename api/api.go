package api

import (
	"github.com/zan8in/cidrx/pkg/cidrx"
	"github.com/zan8in/gologger"
	"github.com/zan8in/gologger/levels"
)

type Result struct {
	Cidr    string
	Address string
}

type OnResultCallback func(r Result)

var OnResult OnResultCallback

// Expand expands the given CIDR/IP targets and returns every produced
// address in order. Boundaries selects whether the computed network and
// broadcast addresses are included.
func Expand(targets []string, boundaries bool) ([]string, error) {
	gologger.DefaultLogger.SetMaxLevel(levels.LevelFatal)

	options := cidrx.NewOptions(cidrx.Options{
		Cidr:       targets,
		Boundaries: boundaries,
		MinPrefix:  cidrx.DefaultMinPrefix,
	})

	runner, err := cidrx.NewRunner(options)
	if err != nil {
		return nil, err
	}

	var addrs []string
	runner.OnResult = func(cidr, addr string) {
		addrs = append(addrs, addr)
		if OnResult != nil {
			OnResult(Result{Cidr: cidr, Address: addr})
		}
	}

	if err = runner.Run(); err != nil {
		return addrs, err
	}

	return addrs, nil
}
