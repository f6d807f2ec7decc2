package queue

import "errors"

// ErrQueueFull is returned by Append when the queue is at max_length.
// It is recoverable: the caller may delete an item and retry.
var ErrQueueFull = errors.New("queue: full")

// ErrSongOwnershipViolation is returned by Append when the supplied
// song handle still claims to be attached to the library database.
// The caller must detach it before enqueueing.
var ErrSongOwnershipViolation = errors.New("queue: song is still attached to the library")

// PreconditionViolation indicates a caller passed an invalid index,
// order, or identifier. It is a bug in the caller, not a recoverable
// runtime condition, and every Core method that can detect one panics
// with this type rather than returning an error.
type PreconditionViolation struct {
	Op  string
	Msg string
}

func (p PreconditionViolation) Error() string {
	return "queue: " + p.Op + ": " + p.Msg
}

func violate(op, msg string) {
	panic(PreconditionViolation{Op: op, Msg: msg})
}
