package cidrx

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// configFile carries option defaults loaded from a yaml file. Flags given on
// the command line win over file values.
type configFile struct {
	Cidr        []string `yaml:"cidr,omitempty"`
	CidrFile    string   `yaml:"cidr-file,omitempty"`
	ExcludeIps  string   `yaml:"exclude-hosts,omitempty"`
	ExcludeFile string   `yaml:"exclude-file,omitempty"`
	Boundaries  bool     `yaml:"boundaries,omitempty"`
	Unique      bool     `yaml:"unique,omitempty"`
	MinPrefix   int      `yaml:"min-prefix,omitempty"`
	Output      string   `yaml:"output,omitempty"`
}

func (options *Options) loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errFileNotFound, path)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(err, path)
	}

	if options.Cidr == nil && len(cfg.Cidr) > 0 {
		options.Cidr = cfg.Cidr
	}
	if options.CidrFile == "" {
		options.CidrFile = cfg.CidrFile
	}
	if options.ExcludeIps == "" {
		options.ExcludeIps = cfg.ExcludeIps
	}
	if options.ExcludeFile == "" {
		options.ExcludeFile = cfg.ExcludeFile
	}
	if cfg.Boundaries {
		options.Boundaries = true
	}
	if cfg.Unique {
		options.Unique = true
	}
	if options.MinPrefix == DefaultMinPrefix && cfg.MinPrefix != 0 {
		options.MinPrefix = cfg.MinPrefix
	}
	if options.Output == "" {
		options.Output = cfg.Output
	}

	return nil
}
