package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	dbutil "tunelog/internal/db"
)

const (
	appName    = "tunelog"
	dbFileName = "tunelog.db"

	// EnvDBPath overrides the database location when set.
	EnvDBPath = "TUNELOG_DB"
)

// Song is a deduplicated (title, artist, album) row.
type Song struct {
	ID      int64
	Title   string
	Artist  string
	Album   string
	Source  string // station name or "manually added"
	AddedAt int64  // unix timestamp
}

type Store struct {
	db *sql.DB
}

// Open opens the database at the resolved path and ensures the schema
// exists. configPath is the db_path from config, may be empty.
func Open(configPath string) (*Store, error) {
	dbPath, err := ResolvePath(configPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.Create(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenExisting opens the database without touching the schema, so a
// missing schema surfaces as an error on first use.
func OpenExisting(configPath string) (*Store, error) {
	dbPath, err := ResolvePath(configPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// ResolvePath picks the database location: environment override first,
// then the config value, then the xdg data dir default.
func ResolvePath(configPath string) (string, error) {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p, nil
	}
	if configPath != "" {
		return configPath, nil
	}
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// IsMissingSchema reports whether err means one of the two tables does
// not exist yet.
func IsMissingSchema(err error) bool {
	return dbutil.IsMissingTable(err, "songs") || dbutil.IsMissingTable(err, "ratings")
}
