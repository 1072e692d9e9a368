package main

import (
	"context"
	"flag"

	"github.com/eak1mov/go-mbutil/disk"
	"github.com/eak1mov/go-mbutil/tile"
	"github.com/google/subcommands"
)

type exportFlags struct {
	scheme     string
	format     string
	decompress bool
}

func (f *exportFlags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.scheme, "scheme", "", "Directory layout (xyz, wms; default z/x/y without row flip)")
	fs.StringVar(&f.format, "format", "png", "Tile file extension")
	fs.BoolVar(&f.decompress, "decompress", false, "Gunzip tile data")
}

func (f *exportFlags) options() []disk.Option {
	decompression := tile.CompressionNone
	if f.decompress {
		decompression = tile.CompressionGzip
	}
	return []disk.Option{
		disk.WithScheme(disk.Scheme(f.scheme)),
		disk.WithFormat(f.format),
		disk.WithDecompression(decompression),
	}
}

type exportCmd struct {
	outputFlags
	exportFlags
	inputPath  string
	outputPath string
}

func (c *exportCmd) Name() string     { return "export" }
func (c *exportCmd) Synopsis() string { return "export MBTiles file into directory tree" }
func (c *exportCmd) Usage() string {
	return "mbutil export -i <path> -o <dir> [-scheme <xyz|wms> -format <ext> -decompress -silent -v]\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input MBTiles file path")
	f.StringVar(&c.outputPath, "o", "", "Output directory path (must not exist)")
	c.exportFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runExport(c.inputPath, c.outputPath, &c.exportFlags, &c.outputFlags)
}

func runExport(inputPath, outputPath string, f *exportFlags, o *outputFlags) subcommands.ExitStatus {
	logger := o.logger()
	if scheme := disk.Scheme(f.scheme); !scheme.Known() {
		logger.Warn("unknown scheme, using z/x/y layout", "scheme", f.scheme)
	}
	progress, finish := o.progress()

	opts := append(f.options(), disk.WithLogger(logger), disk.WithProgress(progress))
	err := disk.Export(inputPath, outputPath, opts...)
	finish()

	if err != nil {
		return o.fail(logger, err)
	}
	return subcommands.ExitSuccess
}
