package mb_test

import (
	"database/sql"
	"errors"
	"maps"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-mbutil/mb"
	"github.com/eak1mov/go-mbutil/tile"
	"github.com/google/go-cmp/cmp"
)

func TestWriterReader(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	tiles := map[tile.ID][]byte{
		{X: 0, Y: 0, Z: 0}: []byte("tile000"),
		{X: 1, Y: 0, Z: 1}: []byte("tile101"),
		{X: 0, Y: 0, Z: 6}: []byte("tile006"),
		{X: 6, Y: 6, Z: 6}: []byte("tile666"),

		{X: 10, Y: -1, Z: 0}:           []byte("tile-flipped"),
		{X: 1 << 40, Y: 1 << 33, Z: 2}: []byte("tile-wide"),
	}
	metadata := map[string]string{
		"name":   "n",
		"format": "png",
		"bounds": "-1,-1,1,1",
	}

	writer, err := mb.NewWriter(filePath, mb.WithMetadata(metadata))
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer writer.Close()

	for tileID, tileData := range tiles {
		if err := writer.WriteTile(tileID, tileData); err != nil {
			t.Errorf("WriteTile(%v) failed: %v", tileID, err)
		}
	}

	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reader, err := mb.NewReader(filePath)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	readerMetadata, err := reader.ReadMetadata()
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if diff := cmp.Diff(metadata, readerMetadata); diff != "" {
		t.Errorf("ReadMetadata mismatch (-want+got):\n%v", diff)
	}

	count, err := reader.CountTiles()
	if err != nil {
		t.Fatalf("CountTiles failed: %v", err)
	}
	if got, want := count, len(tiles); got != want {
		t.Errorf("CountTiles() = %v, want = %v", got, want)
	}

	if diff := cmp.Diff(tiles, maps.Collect(tile.IterTiles(reader))); diff != "" {
		t.Errorf("VisitTiles mismatch (-want+got):\n%v", diff)
	}
}

func TestReaderStoredRows(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	writer, err := mb.NewWriter(filePath)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	_, err = db.Exec("INSERT INTO tiles VALUES (0, 10, -1, x'01'), (1, -2, 5000000000, x'02')")
	if closeErr := db.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		t.Fatalf("INSERT failed: %v", err)
	}

	reader, err := mb.NewReader(filePath)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	want := map[tile.ID][]byte{
		{X: 10, Y: -1, Z: 0}:         {0x01},
		{X: -2, Y: 5000000000, Z: 1}: {0x02},
	}
	if diff := cmp.Diff(want, maps.Collect(tile.IterTiles(reader))); diff != "" {
		t.Errorf("VisitTiles mismatch (-want+got):\n%v", diff)
	}
}

func TestWriterDuplicateTile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	writer, err := mb.NewWriter(filePath)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer writer.Close()

	tileID := tile.ID{X: 1, Y: 2, Z: 3}
	if err := writer.WriteTile(tileID, []byte("first")); err != nil {
		t.Fatalf("WriteTile failed: %v", err)
	}
	if err := writer.WriteTile(tileID, []byte("second")); !errors.Is(err, mb.ErrDuplicateTile) {
		t.Errorf("WriteTile(duplicate) error = %v, want = %v", err, mb.ErrDuplicateTile)
	}
	if err := writer.WriteTile(tile.ID{X: 1, Y: 2, Z: 4}, []byte("other")); err != nil {
		t.Errorf("WriteTile(other zoom) failed: %v", err)
	}
}

func TestWriterExistingSchema(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	writer, err := mb.NewWriter(filePath)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := mb.NewWriter(filePath); !errors.Is(err, mb.ErrSchema) {
		t.Errorf("NewWriter(existing) error = %v, want = %v", err, mb.ErrSchema)
	}
}

func TestStoreInitSchemaTwice(t *testing.T) {
	store, err := mb.Open(filepath.Join(t.TempDir(), "tiles.mbtiles"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if err := store.ApplyWritePragmas(); err != nil {
		t.Fatalf("ApplyWritePragmas failed: %v", err)
	}
	for _, tc := range []struct {
		pragma string
		want   string
	}{
		{"synchronous", "0"},
		{"locking_mode", "exclusive"},
		{"journal_mode", "delete"},
	} {
		got, err := mb.QueryPragma(store, tc.pragma)
		if err != nil {
			t.Fatalf("PRAGMA %v failed: %v", tc.pragma, err)
		}
		if got != tc.want {
			t.Errorf("PRAGMA %v = %v, want = %v", tc.pragma, got, tc.want)
		}
	}
	if err := store.InitSchema(); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	if err := store.InitSchema(); !errors.Is(err, mb.ErrSchema) {
		t.Errorf("InitSchema(twice) error = %v, want = %v", err, mb.ErrSchema)
	}
	if err := store.Optimize(); err != nil {
		t.Errorf("Optimize failed: %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "missing", "tiles.mbtiles")
	if _, err := mb.Open(missingDir); !errors.Is(err, mb.ErrConnection) {
		t.Errorf("Open(%v) error = %v, want = %v", missingDir, err, mb.ErrConnection)
	}

	missingFile := filepath.Join(t.TempDir(), "tiles.mbtiles")
	if _, err := mb.NewReader(missingFile); !errors.Is(err, mb.ErrConnection) {
		t.Errorf("NewReader(%v) error = %v, want = %v", missingFile, err, mb.ErrConnection)
	}
}
