package disk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eak1mov/go-mbutil/mb"
	"github.com/eak1mov/go-mbutil/tile"
)

var ErrMalformedPath = errors.New("mbutil: malformed tile path")

// Import creates the MBTiles file archivePath from the tile tree at dirPath.
//
// The tree holds zoom level directories, then one (zoom < 2) or two levels of
// numbered directories, then numbered tile files:
//
//	<dirPath>/metadata.json
//	<dirPath>/<zoom>/<group>/[<group>/]<number>.<format>
//
// The directory groups and the file number form a tile code in base 1000,
// which the grid splits into tile column and row.
func Import(dirPath, archivePath string, opts ...Option) error {
	config := newConfig(opts)
	logger := config.Logger

	logger.Info("importing disk to MBTiles", "src", dirPath, "dst", archivePath)

	writer, err := mb.NewWriter(archivePath, mb.WithLogger(logger))
	if err != nil {
		return err
	}
	defer writer.Close()

	metadata, err := readMetadata(dirPath)
	switch {
	case errors.Is(err, ErrMissingMetadata):
		logger.Warn("metadata.json not found", "dir", dirPath)
	case err != nil:
		return err
	default:
		if err := writer.WriteMetadata(metadata); err != nil {
			return err
		}
		logger.Info("metadata from metadata.json restored", "entries", len(metadata))
	}

	if config.Format == "" {
		config.Format = metadata["format"]
	}
	if config.Format == "" {
		config.Format = "png"
	}

	imp := importer{config: config, writer: writer}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		z, err := parseNumber(dirPath, entry.Name(), 32)
		if err != nil {
			return err
		}
		depth := 1
		if z >= 2 {
			depth = 2
		}
		if err := imp.readTiles(int64(z), depth, 0, filepath.Join(dirPath, entry.Name())); err != nil {
			return err
		}
	}

	logger.Debug("tiles inserted", "count", imp.done)

	return writer.Finalize()
}

type importer struct {
	config config
	writer *mb.Writer
	done   int
}

func (imp *importer) readTiles(z int64, depth int, baseCode tile.Code, dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	if depth > 0 {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			group, err := parseNumber(dirPath, entry.Name(), 64)
			if err != nil {
				return err
			}
			code, err := baseCode.Add(group, depth)
			if err != nil {
				return err
			}
			if err := imp.readTiles(z, depth-1, code, filepath.Join(dirPath, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ext, _ := strings.Cut(entry.Name(), ".")
		if ext != imp.config.Format {
			imp.config.Logger.Debug("skipping file", "path", filepath.Join(dirPath, entry.Name()))
			continue
		}
		number, err := parseNumber(dirPath, name, 64)
		if err != nil {
			return err
		}
		code, err := baseCode.Add(number, 0)
		if err != nil {
			return err
		}
		if err := imp.readTile(z, code, filepath.Join(dirPath, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (imp *importer) readTile(z int64, code tile.Code, filePath string) error {
	tileID, err := imp.config.Grid.Split(z, code)
	if err != nil {
		return err
	}

	tileData, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	imp.config.Logger.Debug("read tile", "code", code, "zoom", tileID.Z, "column", tileID.X, "row", tileID.Y)

	tileData, err = tile.Compress(tileData, imp.config.Compression)
	if err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	if err := imp.writer.WriteTile(tileID, tileData); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	imp.done++
	imp.config.Progress(imp.done, -1)
	return nil
}

func parseNumber(dirPath, name string, bitSize int) (uint64, error) {
	number, err := strconv.ParseUint(name, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformedPath, filepath.Join(dirPath, name), err)
	}
	return number, nil
}
