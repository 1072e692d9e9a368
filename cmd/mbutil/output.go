package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eak1mov/go-mbutil/mb"
	"github.com/google/subcommands"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

type outputFlags struct {
	silent  bool
	verbose bool

	// stderr receives errors printed in silent mode, os.Stderr if nil.
	stderr io.Writer
}

func (o *outputFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.silent, "silent", false, "Disable logging and progress output")
	f.BoolVar(&o.verbose, "v", false, "Log every tile")
}

func (o *outputFlags) logger() *slog.Logger {
	if o.silent {
		return slog.New(slog.DiscardHandler)
	}
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

// progress returns a tile progress callback and a function finishing the bar.
// Per-tile debug logs replace the bar in verbose mode.
func (o *outputFlags) progress() (func(done, total int), func()) {
	if o.silent || o.verbose {
		return func(int, int) {}, func() {}
	}

	var bar *progressbar.ProgressBar
	update := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowIts(),
				progressbar.OptionShowCount())
		}
		bar.Set(done)
	}
	finish := func() {
		if bar != nil {
			bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	}
	return update, finish
}

// fail reports a fatal error. Connection errors stay quiet in silent mode,
// every other error is always printed.
func (o *outputFlags) fail(logger *slog.Logger, err error) subcommands.ExitStatus {
	switch {
	case !o.silent:
		logger.Error("failed", "err", err)
	case !errors.Is(err, mb.ErrConnection):
		stderr := o.stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		fmt.Fprintln(stderr, err)
	}
	return subcommands.ExitFailure
}
