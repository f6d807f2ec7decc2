// internal/playback/service_impl.go
package playback

import (
	"sync"

	"github.com/llehouerou/wavesd/internal/queue"
	"github.com/llehouerou/wavesd/internal/song"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	core         *queue.Core
	currentOrder int

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New wraps core in a Service. core must not be touched by any other
// caller once wrapped; Service is its single serializing owner.
func New(core *queue.Core) Service {
	return &serviceImpl{
		core:         core,
		currentOrder: queue.End,
	}
}

func (s *serviceImpl) notifySubs() {
	version := s.core.Version()
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.notify(version)
	}
}

func toItem(it queue.Item) Item {
	return Item{Song: it.Song(), ID: it.ID(), Version: it.Version(), Priority: it.Priority()}
}

// Advance computes the next order index and returns its song. At the
// end of the queue it leaves currentOrder unchanged and reports false.
func (s *serviceImpl) Advance() (song.Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.core.Len() == 0 {
		return song.Handle{}, false
	}

	repeat, single, consume := s.core.Repeat(), s.core.Single(), s.core.Consume()

	var next int
	if s.currentOrder == queue.End {
		next = 0
	} else {
		next = queue.Next(s.currentOrder, s.core.Len(), repeat, single, consume)
	}
	if next == queue.End {
		return song.Handle{}, false
	}

	s.currentOrder = next
	item := s.core.ItemAtOrder(next)
	return item.Song(), true
}

func (s *serviceImpl) CurrentOrder() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentOrder
}

func (s *serviceImpl) JumpToOrder(order int) (song.Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order < 0 || order >= s.core.Len() {
		return song.Handle{}, false
	}
	s.currentOrder = order
	return s.core.ItemAtOrder(order).Song(), true
}

func (s *serviceImpl) Enqueue(handle song.Handle, priority uint8) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.core.Append(handle, priority)
	if err != nil {
		return 0, err
	}
	s.notifySubs()
	return id, nil
}

func (s *serviceImpl) Remove(position int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.core.DeletePosition(position)
	s.currentOrder = queue.End
	s.notifySubs()
}

func (s *serviceImpl) Move(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.core.MovePosition(from, to)
	s.notifySubs()
}

func (s *serviceImpl) MoveRange(start, end, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.core.MoveRange(start, end, to)
	s.notifySubs()
}

func (s *serviceImpl) SetPriority(position int, priority uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.currentOrder
	changed := s.core.SetPriority(position, priority, order)
	if changed {
		s.notifySubs()
	}
	return changed
}

func (s *serviceImpl) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.core.Clear()
	s.currentOrder = queue.End
	s.notifySubs()
}

func (s *serviceImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.core.Len()
}

func (s *serviceImpl) Version() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.core.Version()
}

func (s *serviceImpl) ItemAt(position int) Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return toItem(s.core.ItemAt(position))
}

func (s *serviceImpl) ItemAtOrder(order int) Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return toItem(s.core.ItemAtOrder(order))
}

func (s *serviceImpl) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, s.core.Len())
	for i := range out {
		out[i] = toItem(s.core.ItemAt(i))
	}
	return out
}

func (s *serviceImpl) RepeatMode() RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return repeatModeFromFlags(s.core.Repeat(), s.core.Single(), s.core.Consume())
}

func (s *serviceImpl) SetRepeatMode(mode RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repeat, single, consume := mode.flags()
	s.core.SetRepeat(repeat)
	s.core.SetSingle(single)
	s.core.SetConsume(consume)
	s.notifySubs()
}

func (s *serviceImpl) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.core.Random()
}

func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.core.SetRandom(enabled)
	if enabled {
		s.core.ShuffleOrder()
	}
	s.notifySubs()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes and closes a subscription.
func (s *serviceImpl) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			sub.close()
			return
		}
	}
}

// Close shuts down the service.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}
