package tile

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

var ErrCodeOverflow = errors.New("mbutil: tile code overflow")

// CodeBase is the radix of the digit groups encoded in nested directory names.
const CodeBase = 1000

// Code is a tile number assembled from nested directory names,
// one base-1000 digit group per directory level plus the leaf file number.
type Code uint64

// Add returns c + group*CodeBase^depth.
func (c Code) Add(group uint64, depth int) (Code, error) {
	scale := uint64(1)
	for range depth {
		hi, lo := bits.Mul64(scale, CodeBase)
		if hi != 0 {
			return 0, fmt.Errorf("%w: depth %d", ErrCodeOverflow, depth)
		}
		scale = lo
	}
	hi, term := bits.Mul64(group, scale)
	if hi != 0 {
		return 0, fmt.Errorf("%w: group %d at depth %d", ErrCodeOverflow, group, depth)
	}
	sum, carry := bits.Add64(uint64(c), term, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", ErrCodeOverflow, c, term)
	}
	return Code(sum), nil
}

var ErrInvalidGrid = errors.New("mbutil: invalid tile grid")

// Grid describes how a tile code maps to a column and row at each zoom level:
// the longitude span is split into columns of TileSizes[z] degrees.
type Grid struct {
	MinX float64
	MaxX float64

	// TileSizes holds the tile width in degrees per zoom level.
	// Zoom levels missing from the table use DefaultTileSize.
	TileSizes       map[int64]float64
	DefaultTileSize float64
}

// DefaultGrid returns the grid of the gph tile pyramid layout.
// Only zoom levels 0 to 2 have their own tile size.
func DefaultGrid() Grid {
	return Grid{
		MinX:            -180,
		MaxX:            180,
		TileSizes:       map[int64]float64{0: 4, 1: 1, 2: 0.25},
		DefaultTileSize: 4,
	}
}

func (g Grid) TileSize(z int64) float64 {
	if size, ok := g.TileSizes[z]; ok {
		return size
	}
	return g.DefaultTileSize
}

// Columns returns the number of tile columns at zoom level z.
func (g Grid) Columns(z int64) uint64 {
	size := g.TileSize(z)
	if size <= 0 || g.MaxX <= g.MinX {
		return 0
	}
	return uint64(math.Ceil((g.MaxX - g.MinX) / size))
}

// Split decomposes a tile code into the tile at zoom level z.
// The row is the code divided by the column count, rounded half away from zero.
func (g Grid) Split(z int64, code Code) (ID, error) {
	n := g.Columns(z)
	if n == 0 {
		return ID{}, fmt.Errorf("%w: no columns at zoom %d", ErrInvalidGrid, z)
	}
	col := uint64(code) % n
	row := math.Round(float64(code) / float64(n))
	if col > math.MaxInt64 || row >= math.MaxInt64 {
		return ID{}, fmt.Errorf("%w: code %d at zoom %d", ErrCodeOverflow, code, z)
	}
	return ID{X: int64(col), Y: int64(row), Z: z}, nil
}
