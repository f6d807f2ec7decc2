package playback

const eventBufferSize = 16

// Subscription delivers a wakeup after every mutating call on the
// Service it was created from. The queue core emits no events of its
// own; subscribers read the new Version() themselves to see what
// changed.
type Subscription struct {
	Changed <-chan uint32

	changedCh chan uint32
	doneCh    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		changedCh: make(chan uint32, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.Changed = s.changedCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

// notify sends the new version (non-blocking; drops if the
// subscriber's buffer is full, since Changed only carries a wakeup
// hint, not a queue of every change).
func (s *Subscription) notify(version uint32) {
	select {
	case s.changedCh <- version:
	default:
	}
}
