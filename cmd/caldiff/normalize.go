package main

import (
	"fmt"
	"io"

	"github.com/emersion/go-ical"
	"github.com/scott-cotton/cli"

	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/wrap"
)

func normalize(cfg *NormalizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Normalize.Parse(cc, args)
	if err != nil {
		cfg.Normalize.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		cal, err := getCalFile(cc, arg)
		if err != nil {
			return err
		}
		ctx, err := cfg.context(cal)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := normalizeCal(ctx, cc.Out, cal); err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
	}
	return nil
}

func normalizeCal(ctx *compare.Context, w io.Writer, cal *ical.Calendar) error {
	root, err := wrap.Calendar(ctx, cal)
	if err != nil {
		return err
	}
	return normalizeComp(ctx, w, root, "")
}

func normalizeComp(ctx *compare.Context, w io.Writer, c *wrap.Component, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%s (%s)\n", indent, c, c.Kind()); err != nil {
		return err
	}
	for _, p := range c.Properties().All() {
		cmp, err := p.Comparator()
		if err != nil {
			return err
		}
		kind := ctx.Registry().KindOf(p.Prop())
		params := ""
		for _, param := range p.Params().All() {
			params += ";" + param.String()
		}
		if _, err := fmt.Fprintf(w, "%s  %s%s [%s] %s\n", indent, p.Name(), params, kind, cmp); err != nil {
			return err
		}
	}
	for _, child := range c.Components().All() {
		if err := normalizeComp(ctx, w, child, indent+"  "); err != nil {
			return err
		}
	}
	return nil
}
