package inventory

import (
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// AddStatus reports how much of an Add call was placed
type AddStatus int

// Add outcomes
const (
	AddRejected AddStatus = iota
	PartiallyAdded
	FullyAdded
)

// String returns the status name
func (s AddStatus) String() string {
	switch s {
	case FullyAdded:
		return "fully_added"
	case PartiallyAdded:
		return "partially_added"
	default:
		return "rejected"
	}
}

// AddResult describes the outcome of Add
type AddResult struct {
	Status AddStatus
	// Index is the last slot that received material, -1 if none did
	Index     int
	Added     int
	Remaining int
}

// Add places quantity units of entry.
//
// Countable entries first top up the lowest under-filled stack with the same
// unique name, carrying any overflow onward, then open new stacks of at most
// MaxCount in the lowest free slots. Non-countable entries open one stack per
// unit.
//
// Running out of free slots is not rolled back: the result reports
// PartiallyAdded (or AddRejected when nothing fit) together with a Full error,
// and Added/Remaining say how much made it in.
func (c *Container[T]) Add(entry T, quantity int) (AddResult, error) {
	result := AddResult{Status: AddRejected, Index: -1, Remaining: quantity}

	if isNilEntry(entry) {
		return result, errors.InvalidArgument("entry is required")
	}
	if quantity <= 0 {
		return result, errors.InvalidArgumentf("quantity must be positive, got %d", quantity)
	}

	if entry.IsCountable() {
		if entry.MaxCount() <= 0 {
			return result, errors.InvalidArgumentf("max count of %q must be positive", entry.UniqueName())
		}
		c.addCountable(entry, &result)
	} else {
		c.addUnits(entry, &result)
	}
	c.assertConsistent()

	if result.Remaining == 0 {
		result.Status = FullyAdded
		return result, nil
	}

	if result.Added > 0 {
		result.Status = PartiallyAdded
	}
	return result, errors.Fullf("no free slot for %d of %q", result.Remaining, entry.UniqueName()).
		WithCapacity(len(c.slots)).
		WithMeta("added", result.Added).
		WithMeta("remaining", result.Remaining)
}

func (c *Container[T]) addCountable(entry T, result *AddResult) {
	name := entry.UniqueName()

	// Every pass either tops up an under-filled stack or opens a new one,
	// so the loop runs at most twice per slot.
	for result.Remaining > 0 {
		if index, stack, ok := c.underFilled(name); ok {
			n := min(stack.space(), result.Remaining)
			stack.count += n
			result.Added += n
			result.Remaining -= n
			result.Index = index
			continue
		}

		free, ok := c.FindFreeSlot()
		if !ok {
			return
		}
		n := min(result.Remaining, entry.MaxCount())
		c.put(free, SlotOf(c.newStack(entry, n)))
		result.Added += n
		result.Remaining -= n
		result.Index = free
	}
}

func (c *Container[T]) addUnits(entry T, result *AddResult) {
	for result.Remaining > 0 {
		free, ok := c.FindFreeSlot()
		if !ok {
			return
		}
		c.put(free, SlotOf(c.newStack(entry, 1)))
		result.Added++
		result.Remaining--
		result.Index = free
	}
}

// underFilled returns the lowest countable stack named name that still has room
func (c *Container[T]) underFilled(name string) (int, *Stack[T], bool) {
	for i, stack := range c.Stacks() {
		if !stack.entry.IsCountable() || stack.entry.UniqueName() != name {
			continue
		}
		if stack.count < stack.entry.MaxCount() {
			return i, stack, true
		}
	}
	return -1, nil, false
}
