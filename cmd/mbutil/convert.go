package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type convertCmd struct {
	outputFlags
	exportFlags
	inputPath  string
	outputPath string
	format     string
	compress   bool
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "import or export depending on which path is a .mbtiles file" }
func (c *convertCmd) Usage() string {
	return "mbutil convert -i <path> -o <path> [-scheme <xyz|wms> -format <ext> -compress=false -decompress -silent -v]\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.exportFlags.scheme, "scheme", "", "Export directory layout (xyz, wms; default z/x/y without row flip)")
	f.StringVar(&c.format, "format", "", "Tile file extension (default: metadata format or png)")
	f.BoolVar(&c.compress, "compress", true, "Gzip tile data on import")
	f.BoolVar(&c.exportFlags.decompress, "decompress", false, "Gunzip tile data on export")
	c.outputFlags.SetFlags(f)
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	switch deduceDirection(c.inputPath, c.outputPath) {
	case directionImport:
		return runImport(c.inputPath, c.outputPath, &importFlags{format: c.format, compress: c.compress}, &c.outputFlags)
	case directionExport:
		c.exportFlags.format = c.format
		if c.exportFlags.format == "" {
			c.exportFlags.format = "png"
		}
		return runExport(c.inputPath, c.outputPath, &c.exportFlags, &c.outputFlags)
	}

	fmt.Fprintf(os.Stderr, "cannot convert %q to %q: exactly one path must be a .mbtiles file\n", c.inputPath, c.outputPath)
	return subcommands.ExitUsageError
}
