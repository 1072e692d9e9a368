package mb

import (
	"database/sql"

	"github.com/eak1mov/go-mbutil/tile"
)

var _ tile.Visitor = (*Reader)(nil)

// Reader implements tile.Visitor interface for MBTiles format.
type Reader struct {
	store *Store
}

// NewReader opens an existing MBTiles file for reading.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string, opts ...Option) (*Reader, error) {
	store, err := OpenReadOnly(filePath, opts...)
	if err != nil {
		return nil, err
	}
	return &Reader{store: store}, nil
}

func (r *Reader) Close() error {
	return r.store.Close()
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.store.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value.String
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

func (r *Reader) CountTiles() (int, error) {
	var count int
	err := r.store.db.QueryRow("SELECT count(zoom_level) FROM tiles").Scan(&count)
	return count, err
}

// VisitTiles visits all tiles in storage order.
// Tile rows are passed as stored (TMS numbering).
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	rows, err := r.store.db.Query("SELECT zoom_level, tile_column, tile_row, tile_data FROM tiles")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var x, y, z int64
		var tileData []byte

		if err := rows.Scan(&z, &x, &y, &tileData); err != nil {
			return err
		}

		if err := visitor(tile.ID{X: x, Y: y, Z: z}, tileData); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return err
	}

	return nil
}
