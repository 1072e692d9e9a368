package main

import (
	"context"
	"flag"
	"os"

	"github.com/eak1mov/go-mbutil/disk"
	"github.com/google/subcommands"
)

type metadataCmd struct {
	outputFlags
	inputPath string
}

func (c *metadataCmd) Name() string     { return "metadata" }
func (c *metadataCmd) Synopsis() string { return "print MBTiles metadata as JSON" }
func (c *metadataCmd) Usage() string {
	return "mbutil metadata -i <path>\n"
}
func (c *metadataCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input MBTiles file path")
	c.outputFlags.SetFlags(f)
}

func (c *metadataCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	logger := c.logger()
	if err := disk.DumpMetadata(c.inputPath, os.Stdout, disk.WithLogger(logger)); err != nil {
		return c.fail(logger, err)
	}
	return subcommands.ExitSuccess
}
