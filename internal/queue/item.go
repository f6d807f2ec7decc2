package queue

import "github.com/llehouerou/wavesd/internal/song"

// Item is one slot in the queue's dense position array: a detached
// song, its stable identifier, the version it was last touched at,
// and its shuffle priority.
type Item struct {
	handle   song.Handle
	id       uint32
	version  uint32
	priority uint8
}

// Song returns the item's song handle.
func (it Item) Song() song.Handle {
	return it.handle
}

// ID returns the item's stable identifier.
func (it Item) ID() uint32 {
	return it.id
}

// Version returns the version stamp the item was last touched at.
func (it Item) Version() uint32 {
	return it.version
}

// Priority returns the item's shuffle priority (higher plays sooner
// under random mode).
func (it Item) Priority() uint8 {
	return it.priority
}
