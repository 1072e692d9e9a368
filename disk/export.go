package disk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-mbutil/mb"
	"github.com/eak1mov/go-mbutil/tile"
)

var ErrDirectoryExists = errors.New("mbutil: directory already exists")

// Export writes all tiles of the MBTiles file archivePath into a new
// directory dirPath, laid out by the configured Scheme, together with
// metadata.json and, if the metadata has a formatter, layer.json.
//
// Tiles are visited in storage order. An interrupted export leaves
// a partial tree behind.
func Export(archivePath, dirPath string, opts ...Option) error {
	config := newConfig(opts)
	logger := config.Logger

	logger.Info("exporting MBTiles to disk", "src", archivePath, "dst", dirPath)

	reader, err := mb.NewReader(archivePath, mb.WithLogger(logger))
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(dirPath), 0755); err != nil {
		return err
	}
	if err := os.Mkdir(dirPath, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDirectoryExists, dirPath)
		}
		return err
	}

	metadata, err := reader.ReadMetadata()
	if err != nil {
		return err
	}
	if err := writeMetadata(dirPath, metadata); err != nil {
		return err
	}

	total, err := reader.CountTiles()
	if err != nil {
		return err
	}

	format := config.Format
	if format == "" {
		format = "png"
	}

	done := 0
	err = reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		tilePath, err := config.Scheme.TilePath(tileID, format)
		if err != nil {
			return err
		}
		if config.Scheme == SchemeXYZ && !tileID.Valid() {
			logger.Debug("flipping tile outside the tile pyramid", "tile", tileID)
		}
		filePath := filepath.Join(dirPath, tilePath)

		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return err
		}

		tileData, err = tile.Decompress(tileData, config.Decompression)
		if err != nil {
			return fmt.Errorf("tile %v: %w", tileID, err)
		}

		if err := os.WriteFile(filePath, tileData, 0644); err != nil {
			return err
		}

		done++
		logger.Debug("tiles exported", "done", done, "total", total)
		config.Progress(done, total)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("export finished", "tiles", done)
	return nil
}
