package playback

import "github.com/llehouerou/wavesd/internal/song"

// Service is the queue-scheduling facade external callers use.
// queue.Core does no locking of its own; Service is the single owner
// that serializes every access through its own mutex.
type Service interface {
	// Advance computes the next order index per the current mode
	// flags and returns the song that plays there. ok is false at the
	// end of the queue.
	Advance() (song.Handle, bool)
	// CurrentOrder returns the order index Advance or JumpToOrder last
	// moved playback to, or queue.End if playback has not started or
	// was reset by Remove or Clear.
	CurrentOrder() int
	// JumpToOrder moves playback to the given order index directly,
	// bypassing NextSelector.
	JumpToOrder(order int) (song.Handle, bool)

	// Enqueue appends a detached song at the given priority and
	// returns its stable id.
	Enqueue(handle song.Handle, priority uint8) (uint32, error)
	// Remove deletes the item at position.
	Remove(position int)
	// Move relocates a single item.
	Move(from, to int)
	// MoveRange relocates a contiguous block.
	MoveRange(start, end, to int)
	// SetPriority updates a single item's priority.
	SetPriority(position int, priority uint8) bool
	// Clear empties the queue.
	Clear()

	// Len, Version report the queue's size and change token.
	Len() int
	Version() uint32
	// ItemAt, ItemAtOrder expose read access to queue contents.
	ItemAt(position int) Item
	ItemAtOrder(order int) Item
	Items() []Item

	// RepeatMode, SetRepeatMode control the ergonomic repeat enum.
	RepeatMode() RepeatMode
	SetRepeatMode(mode RepeatMode)
	// Shuffle, SetShuffle control random mode.
	Shuffle() bool
	SetShuffle(enabled bool)

	// Subscribe returns a channel that receives a notification after
	// every mutating call. Callers poll Version() to see what changed.
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)

	// Close releases resources held by the service.
	Close() error
}

// Item is the read-only view of a queue entry exposed outside the
// queue package.
type Item struct {
	Song     song.Handle
	ID       uint32
	Version  uint32
	Priority uint8
}
