// Package tile provides common tile types, coordinate arithmetic and interfaces.
package tile

// MaxZoom is the highest zoom level whose rows FlipY can number.
const MaxZoom = 62

// ID represents tile coordinates: column X, row Y and zoom level Z.
// Row numbering (XYZ or TMS) is defined by the source of the ID.
//
// Coordinates are signed: MBTiles columns are plain INTEGERs and
// rows outside the tile pyramid flip to negative numbers.
type ID struct {
	X int64
	Y int64
	Z int64
}

// Valid reports whether the tile lies inside the 2^Z x 2^Z tile pyramid.
func (t ID) Valid() bool {
	if t.Z < 0 || t.Z > MaxZoom {
		return false
	}
	n := int64(1) << t.Z
	return t.X >= 0 && t.X < n && t.Y >= 0 && t.Y < n
}

// FlipY converts row y at zoom z between TMS (row 0 at the bottom)
// and XYZ (row 0 at the top) numbering: (2^z - 1) - y.
// Rows outside [0, 2^z) give rows outside the same range, so
// FlipY(z, FlipY(z, y)) == y for every y. The zoom must be in [0, MaxZoom].
func FlipY(z, y int64) int64 {
	return (int64(1)<<z - 1) - y
}

// Writer defines an interface for writing tiles to a tileset.
type Writer interface {
	// WriteTile writes a single tile to the tileset.
	WriteTile(tileID ID, tileData []byte) error

	// Finalize completes the writing process: commits pending data and optimizes storage.
	// It must be called before closing the Writer.
	Finalize() error
}

type Visitor interface {
	// VisitTiles visits all tiles in the tileset, calling the visitor for each.
	// It returns an error if visiting fails.
	// Order of tiles is implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}
