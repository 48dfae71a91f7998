package cidrx

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/remeh/sizedwaitgroup"
	"github.com/zan8in/cidrx/pkg/expander"
	"github.com/zan8in/cidrx/pkg/ipranger"
	"github.com/zan8in/cidrx/pkg/util/dateutil"
	"github.com/zan8in/cidrx/pkg/util/iputil"
	"github.com/zan8in/gologger"
	"github.com/zan8in/stringsutil"
)

var tempfile = "cidrx-temp-targets-*"

// target is one input line: the spec as given plus its parse outcome.
type target struct {
	spec    string
	network expander.Network
	err     error
}

type Runner struct {
	options    *Options
	excluder   *ipranger.IPRanger
	parseCache *lru.Cache[string, expander.Network]
	dedupe     *bloom.BloomFilter

	targets []*target
	results []expander.SpecResult

	tempTargetFile string

	// OnResult is called for every produced address, in output order.
	OnResult func(cidr, addr string)

	SpecCount    int32
	AddressCount int32
	SkippedCount int32
}

func NewRunner(options *Options) (*Runner, error) {
	runner := &Runner{
		options:  options,
		excluder: ipranger.New(),
	}

	cache, err := lru.New[string, expander.Network](DefaultParseCacheSize)
	if err != nil {
		return runner, err
	}
	runner.parseCache = cache

	if options.Unique {
		runner.dedupe = bloom.NewWithEstimates(DefaultDedupeCapacity, DefaultDedupeFalsePositive)
	}

	return runner, nil
}

// ParseTargets gathers inline and file targets into one ordered list and
// parses them with a bounded worker group. Input order is kept; expansion
// later walks the list sequentially so output order follows input order.
func (runner *Runner) ParseTargets() error {
	tempTargets, err := os.CreateTemp("", tempfile)
	if err != nil {
		return err
	}
	defer tempTargets.Close()

	if len(runner.options.Cidr) > 0 {
		for _, v := range runner.options.Cidr {
			fmt.Fprintf(tempTargets, "%s\n", v)
		}
	}

	if len(runner.options.CidrFile) > 0 {
		f, err := os.Open(runner.options.CidrFile)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(tempTargets, f); err != nil {
			return err
		}
	}

	runner.tempTargetFile = tempTargets.Name()

	f, err := os.Open(runner.tempTargetFile)
	if err != nil {
		return err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		spec := strings.TrimSpace(s.Text())
		if len(spec) == 0 {
			continue
		}
		runner.targets = append(runner.targets, &target{spec: spec})
	}

	wg := sizedwaitgroup.New(DefaultWorkerThreads)
	for _, t := range runner.targets {
		wg.Add()
		go func(t *target) {
			defer wg.Done()
			t.network, t.err = runner.parseTarget(t.spec)
			if t.err != nil {
				gologger.Warning().Msgf("skipping %s: %s\n", t.spec, t.err)
			}
		}(t)
	}
	wg.Wait()

	return nil
}

func (runner *Runner) parseTarget(spec string) (expander.Network, error) {
	// bare IPs are accepted and widened to their /32 block
	spec = iputil.ToCidr(spec)

	if network, ok := runner.parseCache.Get(spec); ok {
		return network, nil
	}
	network, err := expander.ParseCidr(spec)
	if err != nil {
		return network, err
	}
	runner.parseCache.Add(spec, network)
	return network, nil
}

func (runner *Runner) loadExcludes() error {
	if len(runner.options.ExcludeIps) > 0 {
		for _, v := range stringsutil.SplitAny(runner.options.ExcludeIps, ",") {
			runner.addExclude(v)
		}
	}

	if len(runner.options.ExcludeFile) > 0 {
		f, err := os.Open(runner.options.ExcludeFile)
		if err != nil {
			return err
		}
		defer f.Close()

		s := bufio.NewScanner(f)
		for s.Scan() {
			runner.addExclude(s.Text())
		}
	}

	return nil
}

func (runner *Runner) addExclude(v string) {
	v = strings.TrimSpace(v)
	if len(v) == 0 {
		return
	}
	if err := runner.excluder.Add(v); err != nil {
		gologger.Warning().Msgf("%s\n", err)
	}
}

func (runner *Runner) Run() error {
	defer runner.Close()

	if err := runner.ParseTargets(); err != nil {
		return err
	}
	if err := runner.loadExcludes(); err != nil {
		return err
	}

	starttime := time.Now()
	policy := runner.options.Policy()

	gologger.Print().Msgf(
		"Expanding %d specs (%s policy). Starting Cidrx %s at %s\n",
		len(runner.targets),
		policy,
		Version,
		dateutil.GetNowFullDateTime(),
	)

	if runner.options.CountOnly {
		return runner.countOnly(policy)
	}

	for _, t := range runner.targets {
		atomic.AddInt32(&runner.SpecCount, 1)

		// malformed specs are recorded and skipped, not fatal; library
		// callers wanting fail-fast batches use expander.ExpandCidr
		if t.err != nil {
			runner.results = append(runner.results, expander.SpecResult{Spec: t.spec, Err: t.err})
			continue
		}

		if t.network.Prefix() < runner.options.MinPrefix {
			gologger.Warning().Msgf("%s spans %d addresses, expansion may take a while\n", t.spec, t.network.Count(policy))
		}

		result := expander.SpecResult{Spec: t.spec}
		for addr := range t.network.Stream(policy) {
			if runner.excluder.Contains(addr) {
				atomic.AddInt32(&runner.SkippedCount, 1)
				gologger.Debug().Msgf("excluded %s\n", addr)
				continue
			}
			if runner.dedupe != nil && runner.dedupe.TestOrAddString(addr) {
				atomic.AddInt32(&runner.SkippedCount, 1)
				continue
			}

			result.Addresses = append(result.Addresses, addr)
			atomic.AddInt32(&runner.AddressCount, 1)

			if runner.OnResult != nil {
				runner.OnResult(t.spec, addr)
			}
			gologger.Silent().Msgf("%s\n", addr)
		}
		runner.results = append(runner.results, result)

		gologger.Info().Msgf("Expanded %s into %d addresses (%s - %s)\n",
			t.spec,
			len(result.Addresses),
			t.network.NetworkAddress(),
			t.network.BroadcastAddress(),
		)
	}

	if len(runner.options.Output) > 0 {
		if err := runner.WriteOutput(); err != nil {
			gologger.Warning().Msgf("%s\n", err)
		}
	}

	gologger.Print().Msgf("%d specs expanded into %d addresses (%d skipped) in %s. Cidrx finished at %s\n",
		runner.SpecCount,
		runner.AddressCount,
		runner.SkippedCount,
		time.Since(starttime).Round(time.Millisecond),
		dateutil.GetNowFullDateTime(),
	)

	return nil
}

func (runner *Runner) countOnly(policy expander.Policy) error {
	var total uint64
	for _, t := range runner.targets {
		if t.err != nil {
			continue
		}
		count := t.network.Count(policy)
		total += count
		gologger.Silent().Msgf("%s %d\n", t.spec, count)
	}
	gologger.Print().Msgf("Total %d addresses\n", total)
	return nil
}

// Results returns the per-spec outcomes of the last Run, in input order.
func (runner *Runner) Results() []expander.SpecResult {
	return runner.results
}

// Close removes the temp target file.
func (runner *Runner) Close() {
	if runner.tempTargetFile != "" {
		os.RemoveAll(runner.tempTargetFile)
	}
}
