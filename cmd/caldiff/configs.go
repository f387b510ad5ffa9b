package main

import (
	"io"
	"os"

	"github.com/emersion/go-ical"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/caldiff/changeset"
	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/tz"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='render with color'"`
	Config  string `cli:"name=c aliases=config desc='comparison config file (yaml)'"`
	Verbose bool   `cli:"name=v desc='log merges'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// context builds the comparison context from the config file, if any.
// TZIDs defined by the VTIMEZONEs of cals resolve through the configured
// resolver, also under their IANA suffix.
func (cfg *MainConfig) context(cals ...*ical.Calendar) (*compare.Context, error) {
	fileCfg := &FileConfig{}
	if cfg.Config != "" {
		var err error
		fileCfg, err = loadFileConfig(cfg.Config)
		if err != nil {
			return nil, err
		}
	}
	opts, err := fileCfg.options()
	if err != nil {
		return nil, err
	}
	base, err := fileCfg.resolver()
	if err != nil {
		return nil, err
	}
	resolvers := []tz.Resolver{base}
	for _, cal := range cals {
		tz.Preload(tz.IDs(cal)...)
		resolvers = append(resolvers, tz.FromCalendar(cal, base))
	}
	opts = append(opts,
		compare.WithResolver(tz.Chain(resolvers...)),
		compare.WithLogger(newLog(os.Stderr, cfg.Verbose)))
	return compare.NewContext(opts...)
}

func (cfg *MainConfig) renderOpts(w io.Writer) []changeset.RenderOption {
	if cfg.Color {
		return []changeset.RenderOption{changeset.RenderColors(changeset.NewColors())}
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []changeset.RenderOption{changeset.RenderColors(changeset.NewColors())}
	}
	return nil
}

type DiffConfig struct {
	*MainConfig
	Format string `cli:"name=f aliases=format desc='output format: text, yaml or json'"`
	Inline bool   `cli:"name=inline desc='show changed values as inline edits (text format)'"`
	Expect string `cli:"name=expect desc='json file holding the expected change set'"`
	Stats  bool   `cli:"name=stats desc='print only counts of added, removed and changed nodes'"`

	Diff *cli.Command
}

type NormalizeConfig struct {
	*MainConfig

	Normalize *cli.Command
}
