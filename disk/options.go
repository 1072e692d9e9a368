package disk

import (
	"log/slog"

	"github.com/eak1mov/go-mbutil/tile"
)

type config struct {
	Format        string
	Scheme        Scheme
	Grid          tile.Grid
	Compression   tile.Compression
	Decompression tile.Compression
	Logger        *slog.Logger
	Progress      func(done, total int)
}

type Option func(*config)

// WithFormat sets the tile file extension.
// Import reads only files with this extension, defaulting to the "format"
// metadata value or "png". Export names files with it, defaulting to "png".
func WithFormat(format string) Option {
	return func(c *config) { c.Format = format }
}

// WithScheme sets the export directory layout.
func WithScheme(scheme Scheme) Option {
	return func(c *config) { c.Scheme = scheme }
}

// WithGrid sets the grid used by import to split tile codes into columns and rows.
func WithGrid(grid tile.Grid) Option {
	return func(c *config) { c.Grid = grid }
}

// WithCompression sets the compression applied to tile files on import.
// Defaults to tile.CompressionGzip.
func WithCompression(compression tile.Compression) Option {
	return func(c *config) { c.Compression = compression }
}

// WithDecompression sets the compression removed from tile data on export.
// Defaults to tile.CompressionNone: stored bytes are written unchanged.
func WithDecompression(compression tile.Compression) Option {
	return func(c *config) { c.Decompression = compression }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

// WithProgress sets a function called after each tile.
// Total is -1 when it is not known in advance.
func WithProgress(progress func(done, total int)) Option {
	return func(c *config) { c.Progress = progress }
}

func newConfig(opts []Option) config {
	c := config{
		Grid:          tile.DefaultGrid(),
		Compression:   tile.CompressionGzip,
		Decompression: tile.CompressionNone,
		Logger:        slog.New(slog.DiscardHandler),
		Progress:      func(int, int) {},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
