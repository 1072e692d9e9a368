package main

import (
	"context"
	"flag"

	"github.com/eak1mov/go-mbutil/disk"
	"github.com/eak1mov/go-mbutil/tile"
	"github.com/google/subcommands"
)

type importFlags struct {
	format   string
	compress bool
}

func (f *importFlags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.format, "format", "", "Tile file extension (default: metadata format or png)")
	fs.BoolVar(&f.compress, "compress", true, "Gzip tile data")
}

func (f *importFlags) options() []disk.Option {
	compression := tile.CompressionNone
	if f.compress {
		compression = tile.CompressionGzip
	}
	return []disk.Option{
		disk.WithFormat(f.format),
		disk.WithCompression(compression),
	}
}

type importCmd struct {
	outputFlags
	importFlags
	inputPath  string
	outputPath string
}

func (c *importCmd) Name() string     { return "import" }
func (c *importCmd) Synopsis() string { return "import directory tree into MBTiles file" }
func (c *importCmd) Usage() string {
	return "mbutil import -i <dir> -o <path> [-format <ext> -compress=false -silent -v]\n"
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input directory path")
	f.StringVar(&c.outputPath, "o", "", "Output MBTiles file path")
	c.importFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runImport(c.inputPath, c.outputPath, &c.importFlags, &c.outputFlags)
}

func runImport(inputPath, outputPath string, f *importFlags, o *outputFlags) subcommands.ExitStatus {
	logger := o.logger()
	progress, finish := o.progress()

	opts := append(f.options(), disk.WithLogger(logger), disk.WithProgress(progress))
	err := disk.Import(inputPath, outputPath, opts...)
	finish()

	if err != nil {
		return o.fail(logger, err)
	}
	return subcommands.ExitSuccess
}
