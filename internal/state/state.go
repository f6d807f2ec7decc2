// Package state persists the play queue's durable contents across
// restarts: ordered rows plus mode flags, never the runtime position/
// order/id/version structures queue.Core keeps in memory.
package state

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // driver registration
)

const (
	appName    = "wavesd"
	dbFileName = "queue-state.db"
)

// Store is the sqlite-backed snapshot persistence layer.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path. An
// empty path resolves to the XDG data directory, matching the
// teacher's convention for its own state database.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func defaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
