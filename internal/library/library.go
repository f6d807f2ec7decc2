// Package library is the durable song catalog a queue draws from. It
// knows nothing about playback order or scheduling: it stores rows and
// hands back attached song.Handle values that the caller must detach
// before they can enter a queue.Core.
package library

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/wavesd/internal/song"
	_ "modernc.org/sqlite" // driver registration
)

var ErrNotFound = errors.New("library: song not found")

// Repository is the sqlite-backed catalog.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema is current.
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) DB() *sql.DB {
	return r.db
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			track_number INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_songs_album ON songs(album);
	`)
	return err
}

// Insert adds a new song row and returns its attached handle: it
// carries the library id and must be detached before it can enter a
// queue.Core.
func (r *Repository) Insert(path, title, artist, album string, trackNumber int, duration time.Duration) (song.Handle, error) {
	res, err := r.db.Exec(`
		INSERT INTO songs (path, title, artist, album, track_number, duration_ms, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, path, title, artist, album, trackNumber, duration.Milliseconds(), time.Now().Unix())
	if err != nil {
		return song.Handle{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return song.Handle{}, err
	}
	return song.NewAttached(id, path, title, artist, album, trackNumber, duration), nil
}

// ByID returns the attached handle for a library row, or ErrNotFound.
func (r *Repository) ByID(id int64) (song.Handle, error) {
	row := r.db.QueryRow(`
		SELECT path, title, artist, album, track_number, duration_ms
		FROM songs WHERE id = ?
	`, id)

	var path, title, artist, album string
	var trackNumber int
	var durationMs int64
	if err := row.Scan(&path, &title, &artist, &album, &trackNumber, &durationMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return song.Handle{}, ErrNotFound
		}
		return song.Handle{}, err
	}
	return song.NewAttached(id, path, title, artist, album, trackNumber, time.Duration(durationMs)*time.Millisecond), nil
}

// ByPath returns the attached handle for the row at path, or
// ErrNotFound.
func (r *Repository) ByPath(path string) (song.Handle, error) {
	row := r.db.QueryRow(`
		SELECT id, title, artist, album, track_number, duration_ms
		FROM songs WHERE path = ?
	`, path)

	var id int64
	var title, artist, album string
	var trackNumber int
	var durationMs int64
	if err := row.Scan(&id, &title, &artist, &album, &trackNumber, &durationMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return song.Handle{}, ErrNotFound
		}
		return song.Handle{}, err
	}
	return song.NewAttached(id, path, title, artist, album, trackNumber, time.Duration(durationMs)*time.Millisecond), nil
}

// All returns every song row, ordered by insertion.
func (r *Repository) All() ([]song.Handle, error) {
	rows, err := r.db.Query(`
		SELECT id, path, title, artist, album, track_number, duration_ms
		FROM songs ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []song.Handle
	for rows.Next() {
		var id int64
		var path, title, artist, album string
		var trackNumber int
		var durationMs int64
		if err := rows.Scan(&id, &path, &title, &artist, &album, &trackNumber, &durationMs); err != nil {
			return nil, err
		}
		out = append(out, song.NewAttached(id, path, title, artist, album, trackNumber, time.Duration(durationMs)*time.Millisecond))
	}
	return out, rows.Err()
}
