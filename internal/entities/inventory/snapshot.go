package inventory

import (
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
)

// Snapshot is the complete serializable state of a Container
type Snapshot[T Entry] struct {
	Capacity int            `json:"capacity"`
	Occupied int            `json:"occupied"`
	Slots    []SlotState[T] `json:"slots"`
}

// SlotState is one slot of a Snapshot. A nil Entry marks an empty slot.
type SlotState[T Entry] struct {
	ID    string `json:"id,omitempty"`
	Count int    `json:"count,omitempty"`
	Entry *T     `json:"entry,omitempty"`
}

// IsEmpty reports whether the slot state describes an empty slot
func (s SlotState[T]) IsEmpty() bool {
	return s.Entry == nil
}

// Snapshot captures the container state. The entries are copied by value;
// pointer entries still share their target.
func (c *Container[T]) Snapshot() Snapshot[T] {
	snap := Snapshot[T]{
		Capacity: len(c.slots),
		Occupied: c.occupied,
		Slots:    make([]SlotState[T], len(c.slots)),
	}
	for i, stack := range c.Stacks() {
		entry := stack.entry
		snap.Slots[i] = SlotState[T]{
			ID:    stack.id,
			Count: stack.count,
			Entry: &entry,
		}
	}
	return snap
}

// Restore rebuilds a container from a snapshot, keeping every stack ID.
// Snapshots that do not describe a valid container are rejected with a
// DataLoss error. gen names stacks created after the restore; nil selects
// DefaultIDGenerator.
func Restore[T Entry](snap Snapshot[T], gen idgen.Generator) (*Container[T], error) {
	if snap.Capacity <= 0 {
		return nil, errors.DataLossf("snapshot capacity must be positive, got %d", snap.Capacity)
	}
	if len(snap.Slots) != snap.Capacity {
		return nil, errors.DataLossf("snapshot has %d slots for capacity %d", len(snap.Slots), snap.Capacity)
	}

	c, err := New[T](&Config{Capacity: snap.Capacity, IDGenerator: gen})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, snap.Occupied)
	for i, state := range snap.Slots {
		if state.IsEmpty() {
			continue
		}
		if isNilEntry(*state.Entry) {
			return nil, errors.DataLossf("slot %d holds a nil entry", i).WithIndex(i)
		}
		if at, dup := seen[state.ID]; dup {
			return nil, errors.DataLossf("stack %s appears in slots %d and %d", state.ID, at, i).
				WithStackID(state.ID)
		}
		seen[state.ID] = i

		stack := &Stack[T]{entry: *state.Entry, count: state.Count, id: state.ID}
		if err := stack.validate(); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "slot %d holds an invalid stack", i)
		}
		c.put(i, SlotOf(stack))
	}

	if c.occupied != snap.Occupied {
		return nil, errors.DataLossf("snapshot records %d occupied slots but holds %d", snap.Occupied, c.occupied)
	}
	return c, nil
}
