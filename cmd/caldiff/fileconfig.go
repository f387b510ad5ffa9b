package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/tz"
	"github.com/signadot/caldiff/value"
)

// FileConfig is the comparison configuration read with -c.
//
//	defaultSkips: true
//	skip:
//	  properties: [SEQUENCE]
//	  parameters: [X-LIC-ERROR]
//	skipExpr:
//	  - Level == "property" && Name startsWith "X-MOZ-"
//	aliases:
//	  properties:
//	    X-WR-CALNAME: NAME
//	timezones:
//	  Eastern Standard Time: America/New_York
//	kinds:
//	  X-SPONSORS: text-list
type FileConfig struct {
	DefaultSkips bool `yaml:"defaultSkips"`
	Skip         struct {
		Components []string `yaml:"components"`
		Properties []string `yaml:"properties"`
		Parameters []string `yaml:"parameters"`
	} `yaml:"skip"`
	SkipExpr []string `yaml:"skipExpr"`
	Aliases  struct {
		Components map[string]string `yaml:"components"`
		Properties map[string]string `yaml:"properties"`
		Parameters map[string]string `yaml:"parameters"`
	} `yaml:"aliases"`
	Timezones map[string]string     `yaml:"timezones"`
	Kinds     map[string]value.Kind `yaml:"kinds"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseFileConfig(d)
}

func parseFileConfig(d []byte) (*FileConfig, error) {
	res := &FileConfig{}
	if err := yaml.UnmarshalWithOptions(d, res, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return res, nil
}

func (fc *FileConfig) options() ([]compare.Option, error) {
	var opts []compare.Option
	if fc.DefaultSkips {
		opts = append(opts, compare.WithDefaultSkips())
	}
	var skips []compare.SkipKey
	for _, n := range fc.Skip.Components {
		skips = append(skips, compare.SkipComponent(n))
	}
	for _, n := range fc.Skip.Properties {
		skips = append(skips, compare.SkipProperty(n))
	}
	for _, n := range fc.Skip.Parameters {
		skips = append(skips, compare.SkipParameter(n))
	}
	if len(skips) != 0 {
		opts = append(opts, compare.WithSkip(skips...))
	}
	for _, src := range fc.SkipExpr {
		opts = append(opts, compare.WithSkipExpr(src))
	}
	for from, to := range fc.Aliases.Components {
		opts = append(opts, compare.WithAlias(compare.ComponentLevel, from, to))
	}
	for from, to := range fc.Aliases.Properties {
		opts = append(opts, compare.WithAlias(compare.PropertyLevel, from, to))
	}
	for from, to := range fc.Aliases.Parameters {
		opts = append(opts, compare.WithAlias(compare.ParameterLevel, from, to))
	}
	if len(fc.Kinds) != 0 {
		var regOpts []value.Option
		for name, k := range fc.Kinds {
			regOpts = append(regOpts, value.WithPropertyKind(name, k))
		}
		reg, err := value.NewRegistry(regOpts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compare.WithRegistry(reg))
	}
	return opts, nil
}

// resolver answers from the configured timezone table, then from the
// system database.
func (fc *FileConfig) resolver() (tz.Resolver, error) {
	if len(fc.Timezones) == 0 {
		return tz.System, nil
	}
	table := make(map[string]*time.Location, len(fc.Timezones))
	for tzid, name := range fc.Timezones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("timezone %q: %w", tzid, err)
		}
		table[tzid] = loc
	}
	return tz.Chain(tz.Table(table), tz.System), nil
}
