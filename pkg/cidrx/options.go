package cidrx

import (
	"github.com/pkg/errors"
	"github.com/zan8in/cidrx/pkg/expander"
	"github.com/zan8in/cidrx/pkg/util/fileutil"
	"github.com/zan8in/goflags"
	"github.com/zan8in/gologger"
	"github.com/zan8in/gologger/levels"
	"golang.org/x/exp/slices"
)

type Options struct {
	Cidr        goflags.StringSlice // Cidr is the single spec or comma-separated list of CIDR/IP specs to expand
	CidrFile    string              // CidrFile is the file containing specs to expand
	ExcludeIps  string              // Ips or cidr to be excluded from the expansion
	ExcludeFile string              // File containing Ips or cidr to exclude from the expansion

	Boundaries bool   // Include the computed network and broadcast addresses
	Unique     bool   // Drop addresses already produced by an earlier spec
	CountOnly  bool   // Print per-spec address counts instead of expanding
	MinPrefix  int    // Warn before expanding specs wider than this prefix
	ConfigFile string // Optional yaml file preloading option defaults

	Output string // Output is the file to write expanded addresses to
	Debug  bool   // Prints out debug information
	Silent bool   // Only print expanded addresses
}

func ParseOptions() *Options {

	ShowBanner()

	options := &Options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Cidrx`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&options.Cidr, "t", "target", nil, "cidr specs or ips to expand (comma-separated)", goflags.NormalizedStringSliceOptions),
		flagSet.StringVarP(&options.CidrFile, "T", "target-file", "", "list of cidr specs to expand (file)"),
		flagSet.StringVarP(&options.ExcludeIps, "eh", "exclude-hosts", "", "hosts or cidr to exclude from the expansion (comma-separated)"),
		flagSet.StringVarP(&options.ExcludeFile, "ef", "exclude-file", "", "list of hosts or cidr to exclude from expansion (file)"),
	)

	flagSet.CreateGroup("config", "Configuration",
		flagSet.BoolVar(&options.Boundaries, "boundaries", false, "include network and broadcast addresses"),
		flagSet.BoolVar(&options.Unique, "unique", false, "drop duplicate addresses across specs"),
		flagSet.IntVar(&options.MinPrefix, "min-prefix", DefaultMinPrefix, "warn before expanding specs wider than this prefix"),
		flagSet.StringVar(&options.ConfigFile, "config", "", "yaml file preloading option defaults"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "file to write output to (optional), support format: txt,csv,json"),
		flagSet.BoolVar(&options.CountOnly, "count", false, "print per-spec address counts without expanding"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Debug, "debug", false, "display debugging information"),
		flagSet.BoolVar(&options.Silent, "silent", false, "only print expanded addresses"),
	)

	_ = flagSet.Parse()

	if options.ConfigFile != "" {
		if err := options.loadConfig(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("Program exiting: %s\n", err)
		}
	}

	err := options.validateOptions()
	if err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

var (
	errNoInputList    = errors.New("no input list provided")
	errOutputFileType = errors.New("output file type error, support txt, json, csv")
	errFileNotFound   = errors.New("file not found")
	errPrefixRange    = errors.New("prefix length must be in [0,32]")
)

func (options *Options) validateOptions() (err error) {

	if options.Cidr == nil && options.CidrFile == "" {
		return errNoInputList
	}

	if options.CidrFile != "" && !fileutil.FileExists(options.CidrFile) {
		return errors.Wrap(errFileNotFound, options.CidrFile)
	}

	if options.ExcludeFile != "" && !fileutil.FileExists(options.ExcludeFile) {
		return errors.Wrap(errFileNotFound, options.ExcludeFile)
	}

	if options.MinPrefix < 0 || options.MinPrefix > 32 {
		return errors.Wrap(errPrefixRange, "min-prefix")
	}

	if len(options.Output) > 0 {
		if err := checkOutput(options.Output); err != nil {
			return err
		}
	}

	if options.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}

	return err
}

func checkOutput(output string) error {
	supported := []string{fileutil.FILE_TXT, fileutil.FILE_CSV, fileutil.FILE_JSON}
	if !slices.Contains(supported, fileutil.FileExt(output)) {
		return errOutputFileType
	}
	return nil
}

// Policy maps the boundaries flag onto the expansion policy.
func (options *Options) Policy() expander.Policy {
	if options.Boundaries {
		return expander.PolicyAll
	}
	return expander.PolicyHosts
}
