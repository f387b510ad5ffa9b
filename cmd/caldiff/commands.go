package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "caldiff").
		WithSynopsis("caldiff [opts] command [opts]").
		WithDescription("caldiff compares versions of iCalendar documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return caldiffMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			NormalizeCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Format: "text"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [opts] new.ics old.ics").
		WithDescription("print the changes turning old.ics into new.ics, exit 1 if there are any").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func NormalizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NormalizeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("normalize").
		WithAliases("n", "norm").
		WithOpts(opts...).
		WithSynopsis("normalize [files]").
		WithDescription("print the value kind and canonical form of every compared property").
		WithRun(func(cc *cli.Context, args []string) error {
			return normalize(cfg, cc, args)
		})
	cfg.Normalize = cmd
	return cmd
}
