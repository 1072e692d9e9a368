package mb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/eak1mov/go-mbutil/tile"
)

var _ tile.Writer = (*Writer)(nil)

// Writer implements tile.Writer interface for MBTiles format.
//
// All tiles are inserted in a single transaction, committed by Finalize.
type Writer struct {
	store  *Store
	tx     *sql.Tx
	stmt   *sql.Stmt
	logger *slog.Logger
}

// NewWriter creates a new MBTiles file and prepares it for writing tiles:
// applies write pragmas, creates the schema and inserts metadata.
//
// The returned Writer must be closed after use to release database resources.
func NewWriter(filePath string, opts ...Option) (w *Writer, err error) {
	config := newConfig(opts)

	store, err := open(filePath, config.Logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			store.Close()
		}
	}()

	if err = store.ApplyWritePragmas(); err != nil {
		return nil, err
	}

	if err = store.InitSchema(); err != nil {
		return nil, err
	}

	tx, err := store.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare("INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	w = &Writer{store: store, tx: tx, stmt: stmt, logger: config.Logger}
	if err = w.WriteMetadata(config.Metadata); err != nil {
		return nil, err
	}

	return w, nil
}

// WriteMetadata inserts one metadata row per entry, ordered by name.
// Names are not checked for uniqueness.
func (w *Writer) WriteMetadata(metadata map[string]string) error {
	if w.tx == nil {
		return errors.New("mbutil: write after finalize")
	}

	for _, name := range slices.Sorted(maps.Keys(metadata)) {
		_, err := w.tx.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", name, metadata[name])
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTile inserts the tile data as is. The row of tileID is stored unchanged.
func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if w.tx == nil {
		return errors.New("mbutil: write after finalize")
	}

	_, err := w.stmt.Exec(tileID.Z, tileID.X, tileID.Y, tileData)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateTile, tileID)
	}
	return err
}

// Finalize commits written tiles and optimizes the database.
func (w *Writer) Finalize() error {
	if w.tx == nil {
		panic("mbutil: finalize called twice")
	}

	w.logger.Debug("committing tiles")
	err := errors.Join(w.stmt.Close(), w.tx.Commit())
	w.tx = nil
	if err != nil {
		return err
	}

	return w.store.Optimize()
}

func (w *Writer) Close() error {
	var errs []error
	if w.tx != nil {
		errs = append(errs, w.stmt.Close(), w.tx.Rollback())
		w.tx = nil
	}
	errs = append(errs, w.store.Close())
	return errors.Join(errs...)
}
