package inventory

import (
	"cmp"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Sort reorders the slots. With a nil comparator occupied slots move ahead of
// empty ones, keeping their relative order. Otherwise every slot, empty ones
// included, is ordered descending by cmpFn: a slot that compares greater comes
// first. Sort invalidates previously returned indices.
func (c *Container[T]) Sort(cmpFn func(a, b Slot[T]) int) {
	if cmpFn == nil {
		slices.SortStableFunc(c.slots, occupiedFirst[T])
		return
	}
	slices.SortStableFunc(c.slots, func(a, b Slot[T]) int {
		return cmpFn(b, a)
	})
}

func occupiedFirst[T Entry](a, b Slot[T]) int {
	return cmp.Compare(emptyRank(a), emptyRank(b))
}

func emptyRank[T Entry](s Slot[T]) int {
	if s.IsEmpty() {
		return 1
	}
	return 0
}

// ByName ranks occupied slots above empty ones, earlier names above later
// ones and larger stacks above smaller ones, so Sort(ByName) lists stacks
// alphabetically with the empty slots at the end.
func ByName[T Entry](a, b Slot[T]) int {
	as, aok := a.Stack()
	bs, bok := b.Stack()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	if c := strings.Compare(bs.entry.UniqueName(), as.entry.UniqueName()); c != 0 {
		return c
	}
	return cmp.Compare(as.count, bs.count)
}

// Resize changes the number of slots. Occupied slots are packed to the front
// first; when they do not all fit, the ones past newCapacity are dropped and
// returned so the caller can decide what to do with them.
func (c *Container[T]) Resize(newCapacity int) ([]*Stack[T], error) {
	if newCapacity <= 0 {
		return nil, errors.InvalidArgumentf("capacity must be positive, got %d", newCapacity).
			WithCapacity(len(c.slots))
	}

	c.Sort(nil)

	kept := min(c.occupied, newCapacity)
	var dropped []*Stack[T]
	for _, slot := range c.slots[kept:] {
		if stack, ok := slot.Stack(); ok {
			dropped = append(dropped, stack)
		}
	}

	slots := make([]Slot[T], newCapacity)
	copy(slots, c.slots[:kept])
	c.slots = slots
	c.occupied = kept

	c.assertConsistent()
	return dropped, nil
}
