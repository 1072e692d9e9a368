// Package mb provides API for reading and writing tiles and metadata in MBTiles format.
//
// The package registers the sqlite3 driver (github.com/mattn/go-sqlite3).
package mb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrConnection    = errors.New("mbutil: could not connect to database")
	ErrSchema        = errors.New("mbutil: could not create schema")
	ErrDuplicateTile = errors.New("mbutil: duplicate tile")
)

const schemaSQL = `
	CREATE TABLE tiles (
		zoom_level INTEGER,
		tile_column INTEGER,
		tile_row INTEGER,
		tile_data BLOB
	);
	CREATE TABLE metadata (name TEXT, value TEXT);
	CREATE UNIQUE INDEX tiles_index ON tiles (zoom_level, tile_column, tile_row);
`

// Store is an open MBTiles database.
//
// Store keeps a single connection, so pragmas applied by ApplyWritePragmas
// stay in effect for every later statement.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

type config struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type Option func(*config)

// WithMetadata sets metadata rows inserted by NewWriter. Ignored by readers.
func WithMetadata(metadata map[string]string) Option {
	return func(c *config) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

func newConfig(opts []Option) config {
	c := config{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Open opens the MBTiles file at filePath, creating it if it does not exist.
func Open(filePath string, opts ...Option) (*Store, error) {
	return open(filePath, newConfig(opts).Logger)
}

// OpenReadOnly opens an existing MBTiles file at filePath for reading.
func OpenReadOnly(filePath string, opts ...Option) (*Store, error) {
	return open(fmt.Sprintf("file:%s?mode=ro", filePath), newConfig(opts).Logger)
}

func open(dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	db.SetMaxOpenConns(1)

	// sql.Open is lazy, the file is opened by the first connection.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates the tiles and metadata tables and the unique tile index.
// It fails with ErrSchema if any of them already exists.
func (s *Store) InitSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}

// ApplyWritePragmas trades durability for bulk insert speed:
// no synchronous commits, an exclusive file lock and a rollback journal.
// A crash during a bulk import leaves an archive that must be rebuilt.
func (s *Store) ApplyWritePragmas() error {
	for _, pragma := range []string{
		"PRAGMA synchronous=0",
		"PRAGMA locking_mode=EXCLUSIVE",
		"PRAGMA journal_mode=DELETE",
	} {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Optimize refreshes query planner statistics and rewrites the database file.
// VACUUM may temporarily need twice the file size on disk.
// It must not be called while a transaction is open.
func (s *Store) Optimize() error {
	s.logger.Debug("analyzing db")
	if _, err := s.db.Exec("ANALYZE"); err != nil {
		return err
	}

	s.logger.Debug("cleaning db")
	if _, err := s.db.Exec("VACUUM"); err != nil {
		return err
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
