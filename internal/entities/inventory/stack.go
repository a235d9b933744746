package inventory

import (
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
)

// EntityType is reported by Stack.GetType
const EntityType = "inventory_stack"

// Stack is one occupant of a slot: an entry, its quantity and an identifier.
// Count only changes through the owning Container.
type Stack[T Entry] struct {
	entry T
	count int
	id    string
}

// NewStack creates a stack outside of a container, for use with Container.Set.
func NewStack[T Entry](entry T, count int, gen idgen.Generator) (*Stack[T], error) {
	if isNilEntry(entry) {
		return nil, errors.InvalidArgument("entry is required")
	}
	if gen == nil {
		return nil, errors.InvalidArgument("id generator is required")
	}
	stack := &Stack[T]{entry: entry, count: count, id: gen.Generate()}
	if err := stack.validate(); err != nil {
		return nil, err
	}
	return stack, nil
}

// Entry returns the stored entry
func (s *Stack[T]) Entry() T {
	return s.entry
}

// Count returns the quantity held by the stack
func (s *Stack[T]) Count() int {
	return s.count
}

// ID returns the stack identifier
func (s *Stack[T]) ID() string {
	return s.id
}

// GetID returns the stack identifier for rpg-toolkit
func (s *Stack[T]) GetID() string {
	return s.id
}

// GetType returns the entity type for rpg-toolkit
func (s *Stack[T]) GetType() string {
	return EntityType
}

// IsFull reports whether a countable stack reached its max count.
// Non-countable stacks are always full.
func (s *Stack[T]) IsFull() bool {
	return !s.entry.IsCountable() || s.count >= s.entry.MaxCount()
}

func (s *Stack[T]) space() int {
	return s.entry.MaxCount() - s.count
}

func (s *Stack[T]) validate() error {
	if s.id == "" {
		return errors.InvalidArgument("stack id cannot be empty")
	}
	if !s.entry.IsCountable() {
		if s.count < 1 {
			return errors.InvalidArgumentf("non-countable stack must hold at least one unit, got %d", s.count).
				WithStackID(s.id)
		}
		return nil
	}
	maxCount := s.entry.MaxCount()
	if maxCount <= 0 {
		return errors.InvalidArgumentf("max count of %q must be positive", s.entry.UniqueName())
	}
	if s.count <= 0 || s.count > maxCount {
		return errors.InvalidArgumentf("count %d of %q outside 1..%d", s.count, s.entry.UniqueName(), maxCount).
			WithStackID(s.id)
	}
	return nil
}
