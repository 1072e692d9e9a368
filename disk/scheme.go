// Package disk converts tiles between MBTiles files and directory trees
// of tile files with a metadata.json descriptor.
package disk

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/eak1mov/go-mbutil/tile"
)

// Scheme is an export directory layout.
type Scheme string

const (
	// SchemeDefault places tiles at "z/x/y.ext" with rows as stored (TMS).
	SchemeDefault Scheme = ""
	// SchemeXYZ places tiles at "z/x/y.ext" with rows flipped to XYZ numbering.
	SchemeXYZ Scheme = "xyz"
	// SchemeWMS places tiles at "zz/xxx/xxx/xxx/yyy/yyy/yyy.ext",
	// splitting column and row into groups of three digits.
	SchemeWMS Scheme = "wms"
)

var ErrZoomRange = errors.New("mbutil: zoom level out of range")

// TilePath returns the file path of the tile relative to the export root.
// The row of tileID is expected in TMS numbering, as stored in MBTiles.
// Unknown schemes use the SchemeDefault layout.
//
// Coordinates are not validated: negative numbers and rows outside the
// tile pyramid are formatted as they come. SchemeXYZ only fails for zoom
// levels outside [0, tile.MaxZoom].
func (s Scheme) TilePath(tileID tile.ID, format string) (string, error) {
	x, y, z := tileID.X, tileID.Y, tileID.Z
	switch s {
	case SchemeXYZ:
		if z < 0 || z > tile.MaxZoom {
			return "", fmt.Errorf("%w: %v", ErrZoomRange, tileID)
		}
		y = tile.FlipY(z, y) // TMS -> XYZ
	case SchemeWMS:
		return filepath.Join(
			fmt.Sprintf("%02d", z),
			fmt.Sprintf("%03d", floorDiv(x, 1_000_000)),
			fmt.Sprintf("%03d", floorMod(floorDiv(x, 1_000), 1_000)),
			fmt.Sprintf("%03d", floorMod(x, 1_000)),
			fmt.Sprintf("%03d", floorDiv(y, 1_000_000)),
			fmt.Sprintf("%03d", floorMod(floorDiv(y, 1_000), 1_000)),
			fmt.Sprintf("%03d.%s", floorMod(y, 1_000), format),
		), nil
	}
	return filepath.Join(
		strconv.FormatInt(z, 10),
		strconv.FormatInt(x, 10),
		strconv.FormatInt(y, 10)+"."+format,
	), nil
}

// floorDiv and floorMod round towards negative infinity,
// so groups of negative numbers stay in [0, d).
func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && (n < 0) != (d < 0) {
		q--
	}
	return q
}

func floorMod(n, d int64) int64 {
	return n - floorDiv(n, d)*d
}

func (s Scheme) Known() bool {
	return s == SchemeDefault || s == SchemeXYZ || s == SchemeWMS
}
