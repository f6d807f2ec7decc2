// Package queue implements the playback scheduling engine: a play
// queue that maintains a dense position array and a playback order
// permutation over it, a sparse identifier map for stable external
// references, and a monotonic version counter used as a change token.
//
// Core has exactly one owner at a time (see spec.md §5 / SPEC_FULL.md
// §5): it performs no internal locking, so concurrent callers must
// serialize access through a mutex they own themselves, the way
// internal/playback.Service does.
package queue

import "github.com/llehouerou/wavesd/internal/song"

// versionCeiling is the 31-bit ceiling spec.md §3 assigns the version
// counter, chosen so stamps stay representable as positive signed
// 32-bit integers on the wire.
const versionCeiling = (uint32(1) << 31) - 1

// Core is the play queue: items indexed by position, a playback-order
// permutation of positions, a sparse id->position map, the version
// counter, and the four mode flags.
type Core struct {
	maxLength int
	items     []Item
	order     []uint32
	length    int
	version   uint32
	ids       *idMap
	rng       rng

	repeat  bool
	single  bool
	consume bool
	random  bool
}

// NewCore constructs an empty queue with the given capacity. items,
// order, and the identifier map are all sized to maxLength up front
// and never reallocated. hashMult sizes the identifier map's sparsity
// factor (spec.md §3's HASH_MULT); pass 4 absent a tuning reason.
func NewCore(maxLength, hashMult int) *Core {
	if maxLength <= 0 {
		violate("NewCore", "max_length must be positive")
	}
	if hashMult <= 0 {
		violate("NewCore", "hash_mult must be positive")
	}
	return &Core{
		maxLength: maxLength,
		items:     make([]Item, maxLength),
		order:     make([]uint32, maxLength),
		ids:       newIDMap(maxLength, hashMult),
		version:   1,
	}
}

// Len returns the number of items currently in the queue.
func (c *Core) Len() int { return c.length }

// Cap returns the queue's max_length.
func (c *Core) Cap() int { return c.maxLength }

// Version returns the current version counter.
func (c *Core) Version() uint32 { return c.version }

// Repeat, Single, Consume, Random report the current mode flags.
func (c *Core) Repeat() bool  { return c.repeat }
func (c *Core) Single() bool  { return c.single }
func (c *Core) Consume() bool { return c.consume }
func (c *Core) Random() bool  { return c.random }

// SetRepeat, SetSingle, SetConsume set their respective mode flags.
// None of these reorder the queue.
func (c *Core) SetRepeat(v bool)  { c.repeat = v }
func (c *Core) SetSingle(v bool)  { c.single = v }
func (c *Core) SetConsume(v bool) { c.consume = v }

// SetRandom toggles random mode. Turning it on does not itself shuffle
// the order array; callers that want a fresh shuffle should follow
// with ShuffleOrder. Turning it off leaves order as-is, so a
// subsequent re-enable resumes from the same permutation.
func (c *Core) SetRandom(v bool) { c.random = v }

func (c *Core) checkPosition(op string, p int) {
	if p < 0 || p >= c.length {
		violate(op, "position out of range")
	}
}

func (c *Core) checkOrder(op string, o int) {
	if o < 0 || o >= c.length {
		violate(op, "order out of range")
	}
}

// ItemAt returns the item at the given position.
func (c *Core) ItemAt(position int) Item {
	c.checkPosition("ItemAt", position)
	return c.items[position]
}

// ItemAtOrder returns the item that plays at the given order index.
func (c *Core) ItemAtOrder(order int) Item {
	c.checkOrder("ItemAtOrder", order)
	return c.items[c.order[order]]
}

// OrderToPosition maps an order index to the position that plays at
// that ordinal.
func (c *Core) OrderToPosition(order int) int {
	c.checkOrder("OrderToPosition", order)
	return int(c.order[order])
}

// PositionToOrder maps a position to the order index it plays at.
// The order array is not indexed by position, so this is a linear
// scan; this mirrors the original implementation, which does the
// same.
func (c *Core) PositionToOrder(position int) int {
	c.checkPosition("PositionToOrder", position)
	for o := 0; o < c.length; o++ {
		if int(c.order[o]) == position {
			return o
		}
	}
	violate("PositionToOrder", "position missing from order array")
	return -1
}

// IDToPosition maps a stable identifier to its current position.
func (c *Core) IDToPosition(id uint32) (int, bool) {
	pos, ok := c.ids.lookup(id)
	if !ok {
		return 0, false
	}
	return int(pos), true
}

// PositionToID returns the identifier of the item at position.
func (c *Core) PositionToID(position int) uint32 {
	c.checkPosition("PositionToID", position)
	return c.items[position].id
}

// stamp sets item i's version to the current counter. It does not
// advance the counter; call incrementVersion once after stamping every
// item touched by a single logical operation.
func (c *Core) stamp(position int) {
	c.items[position].version = c.version
}

// incrementVersion advances the version counter, wrapping per spec.md
// §3: when it reaches versionCeiling, it resets to 1 and every item's
// stamp resets to 0, so every stamp stays strictly below the counter.
func (c *Core) incrementVersion() {
	c.version++
	if c.version >= versionCeiling {
		for i := 0; i < c.length; i++ {
			c.items[i].version = 0
		}
		c.version = 1
	}
}

// Append adds song to the end of the queue with the given priority and
// returns its new identifier. song must be detached (Attached() ==
// false); an attached handle is refused before any mutation, per
// spec.md §7.
func (c *Core) Append(handle song.Handle, priority uint8) (uint32, error) {
	if handle.Attached() {
		return 0, ErrSongOwnershipViolation
	}
	if c.length >= c.maxLength {
		return 0, ErrQueueFull
	}

	pos := c.length
	id := c.ids.allocate(uint32(pos))
	c.items[pos] = Item{
		handle:   handle.Clone(),
		id:       id,
		version:  c.version,
		priority: priority,
	}
	c.order[pos] = uint32(pos)
	c.length++
	return id, nil
}

// DeletePosition removes the item at p, releasing its song and
// identifier, and compacts both the item and order arrays.
func (c *Core) DeletePosition(p int) {
	c.checkPosition("DeletePosition", p)

	id := c.items[p].id
	ord := c.PositionToOrder(p)

	c.length--
	c.ids.release(id)

	for i := p; i < c.length; i++ {
		c.moveItem(i+1, i)
	}

	for i := ord; i < c.length; i++ {
		c.order[i] = c.order[i+1]
	}

	for i := 0; i < c.length; i++ {
		if c.order[i] > uint32(p) {
			c.order[i]--
		}
	}
}

// Clear releases every song and identifier and empties the queue.
// Mode flags and the version counter are preserved.
func (c *Core) Clear() {
	for i := 0; i < c.length; i++ {
		c.ids.release(c.items[i].id)
		c.items[i] = Item{}
	}
	c.length = 0
}

// moveItem relocates the item at position from to position to,
// updating the id map and stamping the moved item at the current
// version. Does not touch the order array.
func (c *Core) moveItem(from, to int) {
	id := c.items[from].id
	c.items[to] = c.items[from]
	c.items[to].version = c.version
	c.ids.rebind(id, uint32(to))
}

// SwapPositions exchanges the items at p1 and p2, stamping both.
func (c *Core) SwapPositions(p1, p2 int) {
	c.checkPosition("SwapPositions", p1)
	c.checkPosition("SwapPositions", p2)

	id1, id2 := c.items[p1].id, c.items[p2].id
	c.items[p1], c.items[p2] = c.items[p2], c.items[p1]
	c.stamp(p1)
	c.stamp(p2)
	c.ids.rebind(id1, uint32(p2))
	c.ids.rebind(id2, uint32(p1))
	c.incrementVersion()
}

// MovePosition moves the item at from to position to, shifting the
// items between them by one in the opposite direction. Under random
// mode the order array is rewritten so the moved item keeps its
// playback ordinal.
func (c *Core) MovePosition(from, to int) {
	c.checkPosition("MovePosition", from)
	if to < 0 || to >= c.length {
		violate("MovePosition", "to out of range")
	}

	item := c.items[from]

	for i := from; i < to; i++ {
		c.moveItem(i+1, i)
	}
	for i := from; i > to; i-- {
		c.moveItem(i-1, i)
	}

	c.items[to] = item
	c.items[to].version = c.version
	c.ids.rebind(item.id, uint32(to))

	if c.random {
		uf, ut := uint32(from), uint32(to)
		for i := 0; i < c.length; i++ {
			switch {
			case c.order[i] > uf && c.order[i] <= ut:
				c.order[i]--
			case c.order[i] < uf && c.order[i] >= ut:
				c.order[i]++
			case c.order[i] == uf:
				c.order[i] = ut
			}
		}
	}

	c.incrementVersion()
}

// MoveRange moves the half-open block [start, end) to begin at to in
// the index space after the block has been removed (to <= length -
// (end-start)). Items outside the union of the source and destination
// ranges keep their positions.
func (c *Core) MoveRange(start, end, to int) {
	if start < 0 || end > c.length || start > end {
		violate("MoveRange", "start/end out of range")
	}
	if to < 0 || to > c.length-(end-start) {
		violate("MoveRange", "to out of range")
	}
	if start == end {
		return
	}

	n := end - start
	block := make([]Item, n)
	copy(block, c.items[start:end])

	if to > start {
		for i := end; i < end+to-start; i++ {
			c.moveItem(i, start+i-end)
		}
	} else if to < start {
		for i := start - 1; i >= to; i-- {
			c.moveItem(i, i+end-start)
		}
	}

	for i := 0; i < n; i++ {
		dst := to + i
		c.items[dst] = block[i]
		c.items[dst].version = c.version
		c.ids.rebind(block[i].id, uint32(dst))
	}

	if c.random {
		us, ue, ut := uint32(start), uint32(end), uint32(to)
		un := uint32(n)
		for i := 0; i < c.length; i++ {
			switch {
			case c.order[i] >= ue && c.order[i] < ut+ue-us:
				c.order[i] -= un
			case c.order[i] < us && c.order[i] >= ut:
				c.order[i] += un
			case c.order[i] >= us && c.order[i] < ue:
				c.order[i] += ut - us
			}
		}
	}

	c.incrementVersion()
}

// ModifyAtOrder stamps the item that plays at order o with the
// current version, then bumps the counter.
func (c *Core) ModifyAtOrder(o int) {
	c.checkOrder("ModifyAtOrder", o)
	c.stamp(int(c.order[o]))
	c.incrementVersion()
}

// ModifyAll stamps every item with the current version, then bumps
// the counter once.
func (c *Core) ModifyAll() {
	for i := 0; i < c.length; i++ {
		c.stamp(i)
	}
	c.incrementVersion()
}

// ShuffleRange runs a Fisher-Yates shuffle over positions [start, end),
// stamping every touched item.
func (c *Core) ShuffleRange(start, end int) {
	if start < 0 || end > c.length || start > end {
		violate("ShuffleRange", "start/end out of range")
	}
	for i := start; i < end; i++ {
		r := start + c.rng.intn(end-start)
		c.SwapPositions(i, r)
	}
}

// moveOrder relocates order[fromOrder] to toOrder, shifting the
// entries between them by one.
func (c *Core) moveOrder(fromOrder, toOrder int) {
	position := c.order[fromOrder]
	if fromOrder < toOrder {
		for i := fromOrder; i < toOrder; i++ {
			c.order[i] = c.order[i+1]
		}
	} else {
		for i := fromOrder; i > toOrder; i-- {
			c.order[i] = c.order[i-1]
		}
	}
	c.order[toOrder] = position
}

// swapOrders exchanges two order-array entries without touching the
// items array.
func (c *Core) swapOrders(o1, o2 int) {
	c.order[o1], c.order[o2] = c.order[o2], c.order[o1]
}
