package inventory

// Slot is one position of a container: empty, or holding exactly one stack.
// The zero value is an empty slot.
type Slot[T Entry] struct {
	stack *Stack[T]
}

// EmptySlot returns an empty slot
func EmptySlot[T Entry]() Slot[T] {
	return Slot[T]{}
}

// SlotOf returns a slot holding stack. A nil stack yields an empty slot.
func SlotOf[T Entry](stack *Stack[T]) Slot[T] {
	return Slot[T]{stack: stack}
}

// IsEmpty reports whether the slot holds nothing
func (s Slot[T]) IsEmpty() bool {
	return s.stack == nil
}

// Stack returns the held stack and true, or nil and false for an empty slot
func (s Slot[T]) Stack() (*Stack[T], bool) {
	return s.stack, s.stack != nil
}
