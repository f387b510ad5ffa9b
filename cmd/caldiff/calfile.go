package main

import (
	"fmt"
	"io"
	"os"

	"github.com/emersion/go-ical"
	"github.com/scott-cotton/cli"

	"github.com/signadot/caldiff"
)

func getCalFile(cc *cli.Context, path string) (*ical.Calendar, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	cal, err := caldiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return cal, nil
}
