package inventory

import (
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// RemoveStatus reports the outcome of a removal
type RemoveStatus int

// Remove outcomes
const (
	RemoveRejected RemoveStatus = iota
	PartiallyRemoved
	FullyRemoved
)

// String returns the status name
func (s RemoveStatus) String() string {
	switch s {
	case FullyRemoved:
		return "fully_removed"
	case PartiallyRemoved:
		return "partially_removed"
	default:
		return "rejected"
	}
}

// RemoveByID removes quantity units from the stack with the given ID.
// A quantity of zero, or any quantity on a non-countable stack, removes the
// whole stack.
func (c *Container[T]) RemoveByID(stackID string, quantity int) (RemoveStatus, error) {
	index, ok := c.Contains(stackID)
	if !ok {
		return RemoveRejected, errors.NotFoundf("stack %s not found", stackID).
			WithStackID(stackID)
	}
	return c.removeAt(index, quantity)
}

// RemoveAt is RemoveByID addressed by slot index
func (c *Container[T]) RemoveAt(index, quantity int) (RemoveStatus, error) {
	if err := c.checkIndex(index); err != nil {
		return RemoveRejected, err
	}
	return c.removeAt(index, quantity)
}

func (c *Container[T]) removeAt(index, quantity int) (RemoveStatus, error) {
	stack, ok := c.slots[index].Stack()
	if !ok {
		return RemoveRejected, errors.NotFoundf("slot %d is empty", index).
			WithIndex(index)
	}
	if quantity < 0 {
		return RemoveRejected, errors.InvalidArgumentf("quantity cannot be negative, got %d", quantity)
	}

	if quantity == 0 || !stack.entry.IsCountable() {
		c.put(index, EmptySlot[T]())
		c.assertConsistent()
		return FullyRemoved, nil
	}

	if quantity > stack.count {
		return RemoveRejected, errors.InvalidArgumentf("cannot remove %d from a stack of %d", quantity, stack.count).
			WithStackID(stack.id).
			WithIndex(index)
	}

	stack.count -= quantity
	if stack.count == 0 {
		c.put(index, EmptySlot[T]())
		c.assertConsistent()
		return FullyRemoved, nil
	}

	c.assertConsistent()
	return PartiallyRemoved, nil
}
