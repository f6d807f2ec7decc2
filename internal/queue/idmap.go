package queue

const unused = ^uint32(0)

// idMap is the sparse identifier-to-position index described in
// spec.md §4.1. It is sized once, at construction, and never
// reallocated. hashMult is the sparsity factor: the map has
// maxLength*hashMult slots so the allocation cursor rarely collides
// with a live identifier, even right after it wraps around.
type idMap struct {
	slots  []uint32 // identifier -> position, or unused
	cursor uint32
}

func newIDMap(maxLength, hashMult int) *idMap {
	slots := make([]uint32, maxLength*hashMult)
	for i := range slots {
		slots[i] = unused
	}
	return &idMap{slots: slots}
}

// allocate scans forward from the map's cursor for a free slot and
// binds it to pos. Callers guarantee length < max_length, so a free
// slot always exists.
func (m *idMap) allocate(pos uint32) uint32 {
	n := uint32(len(m.slots))
	for {
		id := m.cursor
		m.cursor++
		if m.cursor >= n {
			m.cursor = 0
		}
		if m.slots[id] == unused {
			m.slots[id] = pos
			return id
		}
	}
}

// bind overwrites the slot for id, used when allocate already chose
// the id and the caller wants to record its position explicitly.
func (m *idMap) bind(id, pos uint32) {
	m.slots[id] = pos
}

// rebind updates the position of an already-bound id. O(1).
func (m *idMap) rebind(id, pos uint32) {
	m.slots[id] = pos
}

// release frees id's slot.
func (m *idMap) release(id uint32) {
	m.slots[id] = unused
}

// lookup returns the position bound to id, and whether id is live.
func (m *idMap) lookup(id uint32) (uint32, bool) {
	if id >= uint32(len(m.slots)) {
		return 0, false
	}
	pos := m.slots[id]
	return pos, pos != unused
}
