package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/caldiff"
	"github.com/signadot/caldiff/changeset"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one input may be stdin", cli.ErrUsage)
	}
	newCal, err := getCalFile(cc, args[0])
	if err != nil {
		return err
	}
	oldCal, err := getCalFile(cc, args[1])
	if err != nil {
		return err
	}
	ctx, err := cfg.context(newCal, oldCal)
	if err != nil {
		return err
	}
	sel, err := caldiff.Diff(ctx, newCal, oldCal)
	if err != nil {
		return err
	}
	if cfg.Expect != "" {
		return expect(cfg, cc, sel)
	}
	if sel == nil {
		return nil
	}
	if err := output(cfg, cc.Out, sel); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func output(cfg *DiffConfig, w io.Writer, sel *changeset.ComponentSelection) error {
	if cfg.Stats {
		st := sel.Stats()
		_, err := fmt.Fprintf(w, "added %d removed %d changed %d\n", st.Added, st.Removed, st.Changed)
		return err
	}
	switch cfg.Format {
	case "yaml", "y":
		return changeset.EncodeYAML(w, sel)
	case "json", "j":
		return changeset.EncodeJSON(w, sel)
	case "text", "t", "":
		opts := append(cfg.renderOpts(w), changeset.RenderInline(cfg.Inline))
		return changeset.Render(w, sel, opts...)
	}
	return fmt.Errorf("%w: unknown format %q", cli.ErrUsage, cfg.Format)
}

// expect compares the change set with the one stored in cfg.Expect,
// exiting 1 on mismatch.
func expect(cfg *DiffConfig, cc *cli.Context, sel *changeset.ComponentSelection) error {
	want, err := os.ReadFile(cfg.Expect)
	if err != nil {
		return err
	}
	got := &bytes.Buffer{}
	if err := changeset.EncodeJSON(got, sel); err != nil {
		return err
	}
	if changeset.EqualJSON(got.Bytes(), want) {
		return nil
	}
	fmt.Fprintf(cc.Out, "change set differs from %s:\n", cfg.Expect)
	if _, err := cc.Out.Write(got.Bytes()); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
