package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/wavesd/internal/db"
	"github.com/llehouerou/wavesd/internal/queue"
	"github.com/llehouerou/wavesd/internal/song"
)

// SnapshotItem is one durable queue row, in position order: the song
// fields needed to reconstruct a song.Handle and re-append it. Duration
// is not stored, so a rehydrated handle has a zero Duration.
type SnapshotItem struct {
	// LibraryID is 0 for queue items with no backing library row
	// (detached songs); such rows are stored with a NULL library_id.
	LibraryID   int64
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Priority    uint8
}

// Snapshot is the durable queue state: ordered rows plus mode flags.
// Position, order, identifiers, and version are runtime-only and are
// never part of a Snapshot.
type Snapshot struct {
	Items   []SnapshotItem
	Repeat  bool
	Single  bool
	Consume bool
	Random  bool
}

// Save replaces the stored snapshot with snap.
func (s *Store) Save(snap Snapshot) error {
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_items`); err != nil {
			return err
		}
		for i, item := range snap.Items {
			var libraryID any
			if item.LibraryID > 0 {
				libraryID = item.LibraryID
			}
			if _, err := tx.Exec(`
				INSERT INTO queue_items (position, library_id, path, title, artist, album, track_number, priority)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, i, libraryID, item.Path, item.Title, item.Artist, item.Album, item.TrackNumber, item.Priority); err != nil {
				return err
			}
		}

		_, err := tx.Exec(`
			INSERT INTO queue_mode (id, repeat_flag, single_flag, consume_flag, random_flag)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				repeat_flag = excluded.repeat_flag,
				single_flag = excluded.single_flag,
				consume_flag = excluded.consume_flag,
				random_flag = excluded.random_flag
		`, snap.Repeat, snap.Single, snap.Consume, snap.Random)
		return err
	})
}

// Load reads the stored snapshot. A store that has never been saved
// to returns a zero-value Snapshot with no error.
func (s *Store) Load() (Snapshot, error) {
	var snap Snapshot

	row := s.db.QueryRow(`SELECT repeat_flag, single_flag, consume_flag, random_flag FROM queue_mode WHERE id = 1`)
	if err := row.Scan(&snap.Repeat, &snap.Single, &snap.Consume, &snap.Random); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, err
		}
	}

	rows, err := s.db.Query(`
		SELECT library_id, path, title, artist, album, track_number, priority
		FROM queue_items ORDER BY position
	`)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item SnapshotItem
		var libraryID sql.NullInt64
		if err := rows.Scan(&libraryID, &item.Path, &item.Title, &item.Artist, &item.Album,
			&item.TrackNumber, &item.Priority); err != nil {
			return Snapshot{}, err
		}
		item.LibraryID = dbutil.NullInt64Value(libraryID)
		snap.Items = append(snap.Items, item)
	}
	return snap, rows.Err()
}

// Rehydrate re-creates core's runtime structures from snap: it calls
// Append for every row in order, replays priorities, and restores the
// mode flags. It never deserializes an IdMap or order array directly,
// keeping queue.Core free of persistence-format concerns.
func Rehydrate(core *queue.Core, snap Snapshot) error {
	for _, item := range snap.Items {
		handle := song.NewDetached(item.Path, item.Title, item.Artist, item.Album, item.TrackNumber, 0)
		handle.LibraryID = item.LibraryID
		if _, err := core.Append(handle, item.Priority); err != nil {
			return err
		}
	}
	core.SetRepeat(snap.Repeat)
	core.SetSingle(snap.Single)
	core.SetConsume(snap.Consume)
	core.SetRandom(snap.Random)
	if snap.Random {
		core.ShuffleOrder()
	}
	return nil
}
