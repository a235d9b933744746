package inventory

import (
	"iter"
	"reflect"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
)

// DefaultIDGenerator names stacks when Config.IDGenerator is nil
var DefaultIDGenerator idgen.Generator = idgen.NewUUID("stk")

// Config holds the settings for a new Container
type Config struct {
	Capacity    int
	IDGenerator idgen.Generator
}

// Validate ensures the config describes a usable container
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("Capacity", c.Capacity, vb)
	return vb.Build()
}

// Container is a fixed-capacity slot array with occupancy bookkeeping.
// occupied always equals the number of non-empty slots once a method returns.
type Container[T Entry] struct {
	slots    []Slot[T]
	occupied int
	idGen    idgen.Generator
}

// New creates an empty container
func New[T Entry](cfg *Config) (*Container[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = DefaultIDGenerator
	}

	return &Container[T]{
		slots: make([]Slot[T], cfg.Capacity),
		idGen: gen,
	}, nil
}

// Capacity returns the number of slots
func (c *Container[T]) Capacity() int {
	return len(c.slots)
}

// Occupied returns the number of non-empty slots
func (c *Container[T]) Occupied() int {
	return c.occupied
}

// IsEmpty reports whether no slot is occupied
func (c *Container[T]) IsEmpty() bool {
	return c.occupied == 0
}

// HasFreeSlot reports whether at least one slot is empty
func (c *Container[T]) HasFreeSlot() bool {
	return c.occupied < len(c.slots)
}

// FindFreeSlot returns the lowest empty slot index
func (c *Container[T]) FindFreeSlot() (int, bool) {
	for i, slot := range c.slots {
		if slot.IsEmpty() {
			return i, true
		}
	}
	return -1, false
}

// Contains locates a stack by ID. It is the only reliable way to find a
// stack again after Sort or Resize.
func (c *Container[T]) Contains(stackID string) (int, bool) {
	if stackID == "" {
		return -1, false
	}
	for i, slot := range c.slots {
		if stack, ok := slot.Stack(); ok && stack.id == stackID {
			return i, true
		}
	}
	return -1, false
}

// ContainsKind returns the first slot whose entry has the given runtime type,
// regardless of its unique name.
func (c *Container[T]) ContainsKind(kind reflect.Type) (int, bool) {
	if kind == nil {
		return -1, false
	}
	for i, slot := range c.slots {
		if stack, ok := slot.Stack(); ok && reflect.TypeOf(stack.entry) == kind {
			return i, true
		}
	}
	return -1, false
}

// FindKind returns the first slot whose entry is a K.
func FindKind[K any, T Entry](c *Container[T]) (int, bool) {
	for i, slot := range c.slots {
		stack, ok := slot.Stack()
		if !ok {
			continue
		}
		if _, ok := any(stack.entry).(K); ok {
			return i, true
		}
	}
	return -1, false
}

// CountOf sums the quantity held by all stacks with the given unique name
func (c *Container[T]) CountOf(uniqueName string) int {
	total := 0
	for _, stack := range c.Stacks() {
		if stack.entry.UniqueName() == uniqueName {
			total += stack.count
		}
	}
	return total
}

// Get returns the slot at index
func (c *Container[T]) Get(index int) (Slot[T], error) {
	if err := c.checkIndex(index); err != nil {
		return Slot[T]{}, err
	}
	return c.slots[index], nil
}

// Set replaces the slot at index and keeps the occupancy count in step.
// A stack may only live in one slot: placing a stack that is already held
// by another slot is rejected.
func (c *Container[T]) Set(index int, slot Slot[T]) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}

	if stack, ok := slot.Stack(); ok {
		if err := stack.validate(); err != nil {
			return err
		}
		if at, found := c.Contains(stack.id); found && at != index {
			return errors.InvalidArgumentf("stack %s is already held by slot %d", stack.id, at).
				WithStackID(stack.id).
				WithIndex(at)
		}
	}

	c.put(index, slot)
	c.assertConsistent()
	return nil
}

// All yields every slot in order, empty ones included. The sequence can be
// ranged over any number of times.
func (c *Container[T]) All() iter.Seq2[int, Slot[T]] {
	return func(yield func(int, Slot[T]) bool) {
		for i, slot := range c.slots {
			if !yield(i, slot) {
				return
			}
		}
	}
}

// Stacks yields only occupied slots
func (c *Container[T]) Stacks() iter.Seq2[int, *Stack[T]] {
	return func(yield func(int, *Stack[T]) bool) {
		for i, slot := range c.slots {
			stack, ok := slot.Stack()
			if !ok {
				continue
			}
			if !yield(i, stack) {
				return
			}
		}
	}
}

// Clear empties every slot
func (c *Container[T]) Clear() {
	c.slots = make([]Slot[T], len(c.slots))
	c.occupied = 0
}

// Validate checks the container invariants. A non-nil result is an
// Inconsistent error and means a bug, not bad input.
func (c *Container[T]) Validate() error {
	if len(c.slots) == 0 {
		return errors.Inconsistent("container has no slots")
	}

	seen := make(map[string]int, c.occupied)
	count := 0
	for i, stack := range c.Stacks() {
		count++
		if at, dup := seen[stack.id]; dup {
			return errors.Inconsistentf("stack %s held by slots %d and %d", stack.id, at, i).
				WithStackID(stack.id)
		}
		seen[stack.id] = i
		if err := stack.validate(); err != nil {
			return errors.WrapWithCodef(err, errors.CodeInconsistent, "slot %d holds an invalid stack", i)
		}
	}

	if count != c.occupied {
		return errors.Inconsistentf("occupied count %d disagrees with %d non-empty slots", c.occupied, count).
			WithCapacity(len(c.slots))
	}
	return nil
}

// put is the only place that writes a slot
func (c *Container[T]) put(index int, slot Slot[T]) {
	wasEmpty := c.slots[index].IsEmpty()
	switch {
	case wasEmpty && !slot.IsEmpty():
		c.occupied++
	case !wasEmpty && slot.IsEmpty():
		c.occupied--
	}
	c.slots[index] = slot
}

func (c *Container[T]) newStack(entry T, count int) *Stack[T] {
	return &Stack[T]{
		entry: cloneEntry(entry),
		count: count,
		id:    c.idGen.Generate(),
	}
}

func (c *Container[T]) checkIndex(index int) error {
	if index < 0 || index >= len(c.slots) {
		return errors.NotFoundf("slot %d out of range", index).
			WithIndex(index).
			WithCapacity(len(c.slots))
	}
	return nil
}

func (c *Container[T]) assertConsistent() {
	if !invariantChecks {
		return
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}
}
