package queue

import "sort"

// ShuffleOrderRange uniformly permutes order[start:end] in place.
func (c *Core) ShuffleOrderRange(start, end int) {
	if start < 0 || end > c.length || start > end {
		violate("ShuffleOrderRange", "start/end out of range")
	}
	c.rng.shuffle(c.order[start:end])
}

// ShuffleOrderFirst performs a single random swap between the first
// slot of [start, end) and a uniformly chosen partner in that range.
func (c *Core) ShuffleOrderFirst(start, end int) {
	if start < 0 || end > c.length || start >= end {
		violate("ShuffleOrderFirst", "start/end out of range")
	}
	r := start + c.rng.intn(end-start)
	c.swapOrders(start, r)
}

// ShuffleOrderLast performs a single random swap between the last
// slot of [start, end) and a uniformly chosen partner in that range.
func (c *Core) ShuffleOrderLast(start, end int) {
	if start < 0 || end > c.length || start >= end {
		violate("ShuffleOrderLast", "start/end out of range")
	}
	r := start + c.rng.intn(end-start)
	c.swapOrders(end-1, r)
}

// sortOrderByPriority sorts order[start:end] by descending item
// priority. Stability across equal keys is not required; only that
// priority groups end up contiguous.
func (c *Core) sortOrderByPriority(start, end int) {
	slice := c.order[start:end]
	sort.Slice(slice, func(i, j int) bool {
		return c.items[slice[i]].priority > c.items[slice[j]].priority
	})
}

// ShuffleOrderRangeWithPriority sorts order[start:end] into
// descending-priority groups, then shuffles each maximal
// constant-priority run independently.
func (c *Core) ShuffleOrderRangeWithPriority(start, end int) {
	if start < 0 || end > c.length || start > end {
		violate("ShuffleOrderRangeWithPriority", "start/end out of range")
	}
	if start == end {
		return
	}

	c.sortOrderByPriority(start, end)

	groupStart := start
	groupPriority := c.items[c.order[start]].priority
	for i := start + 1; i < end; i++ {
		p := c.items[c.order[i]].priority
		if p != groupPriority {
			c.ShuffleOrderRange(groupStart, i)
			groupStart = i
			groupPriority = p
		}
	}
	c.ShuffleOrderRange(groupStart, end)
}

// ShuffleOrder re-derives the entire order array under priority
// grouping. No Core operation calls it on its own: Append under random
// mode places the new item at the end of the order array without
// regrouping, and SetPriority repositions only the item it changes.
func (c *Core) ShuffleOrder() {
	c.ShuffleOrderRangeWithPriority(0, c.length)
}

// findPriorityOrder returns the first order index at or after
// startOrder (excluding excludeOrder) whose item's priority is <=
// priority, or length if none.
func (c *Core) findPriorityOrder(startOrder int, priority uint8, excludeOrder int) int {
	for o := startOrder; o < c.length; o++ {
		if o == excludeOrder {
			continue
		}
		if c.items[c.order[o]].priority <= priority {
			return o
		}
	}
	return c.length
}

// countSamePriority returns how many consecutive order entries from
// startOrder share the given priority.
func (c *Core) countSamePriority(startOrder int, priority uint8) int {
	count := 0
	for o := startOrder; o < c.length && c.items[c.order[o]].priority == priority; o++ {
		count++
	}
	return count
}

// SetPriority updates the priority of the item at position and
// reports whether anything changed. afterOrder is the last-played
// order index, or -1 if none. In non-random mode the priority is
// updated and the call returns immediately. Under random mode, see
// spec.md §4.2 for the full repositioning contract.
func (c *Core) SetPriority(position int, priority uint8, afterOrder int) bool {
	c.checkPosition("SetPriority", position)

	oldPriority := c.items[position].priority
	if oldPriority == priority {
		return false
	}

	c.stamp(position)
	c.items[position].priority = priority
	c.incrementVersion()

	if !c.random {
		return true
	}

	order := c.PositionToOrder(position)
	if afterOrder >= 0 {
		if order == afterOrder {
			return true
		}
		if order < afterOrder {
			afterPosition := c.OrderToPosition(afterOrder)
			afterPriority := c.items[afterPosition].priority
			if oldPriority > afterPriority || priority <= afterPriority {
				return true
			}
		}
	}

	beforeOrder := c.findPriorityOrder(afterOrder+1, priority, order)
	newOrder := beforeOrder
	if beforeOrder > order {
		newOrder = beforeOrder - 1
	}
	c.moveOrder(order, newOrder)

	count := c.countSamePriority(newOrder, priority)
	c.ShuffleOrderFirst(newOrder, newOrder+count)

	return true
}

// SetPriorityRange applies SetPriority to every position in
// [start, end). afterOrder is re-evaluated each iteration by tracking
// the after-item's position through the mutated order array, since
// SetPriority may have moved it.
func (c *Core) SetPriorityRange(start, end int, priority uint8, afterOrder int) bool {
	if start < 0 || end > c.length || start > end {
		violate("SetPriorityRange", "start/end out of range")
	}

	modified := false
	afterPosition := -1
	if afterOrder >= 0 {
		afterPosition = c.OrderToPosition(afterOrder)
	}

	for i := start; i < end; i++ {
		order := -1
		if afterPosition >= 0 {
			order = c.PositionToOrder(afterPosition)
		}
		if c.SetPriority(i, priority, order) {
			modified = true
		}
	}
	return modified
}
