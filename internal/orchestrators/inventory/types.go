package inventory

import (
	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/item"
)

// ContainerView is a read-only copy of a named container
type ContainerView struct {
	Name     string     `json:"name" yaml:"name"`
	Capacity int        `json:"capacity" yaml:"capacity"`
	Occupied int        `json:"occupied" yaml:"occupied"`
	Slots    []SlotView `json:"slots" yaml:"slots"`
}

// SlotView describes one slot. Empty slots carry only their index.
type SlotView struct {
	Index   int        `json:"index" yaml:"index"`
	StackID string     `json:"stack_id,omitempty" yaml:"stack_id,omitempty"`
	Count   int        `json:"count,omitempty" yaml:"count,omitempty"`
	Item    *item.Item `json:"item,omitempty" yaml:"item,omitempty"`
}

// IsEmpty reports whether the slot holds nothing
func (v SlotView) IsEmpty() bool {
	return v.Item == nil
}

// StackView describes a stack that left a container
type StackView struct {
	StackID string    `json:"stack_id" yaml:"stack_id"`
	Count   int       `json:"count" yaml:"count"`
	Item    item.Item `json:"item" yaml:"item"`
}

// CreateInput defines the request for creating a container
type CreateInput struct {
	Name     string
	Capacity int
	// Overwrite replaces an existing container with the same name
	Overwrite bool
}

// CreateOutput defines the response for creating a container
type CreateOutput struct {
	Container *ContainerView
}

// AddItemInput defines the request for adding items
type AddItemInput struct {
	Name     string
	Item     item.Item
	Quantity int
}

// AddItemOutput defines the response for adding items.
// It is also returned alongside a Full error when only part of the
// quantity fit.
type AddItemOutput struct {
	Status    entities.AddStatus
	Slot      int
	Added     int
	Remaining int
	Container *ContainerView
}

// RemoveItemInput defines the request for removing items.
// Exactly one of StackID and Slot selects the stack.
type RemoveItemInput struct {
	Name     string
	StackID  string
	Slot     *int
	Quantity int
}

// RemoveItemOutput defines the response for removing items
type RemoveItemOutput struct {
	Status    entities.RemoveStatus
	Container *ContainerView
}

// SortInput defines the request for sorting a container
type SortInput struct {
	Name string
	// ByName orders stacks alphabetically; otherwise stacks are only packed
	ByName bool
}

// SortOutput defines the response for sorting a container
type SortOutput struct {
	Container *ContainerView
}

// ResizeInput defines the request for resizing a container
type ResizeInput struct {
	Name     string
	Capacity int
}

// ResizeOutput defines the response for resizing a container
type ResizeOutput struct {
	Dropped   []StackView
	Container *ContainerView
}

// ClearInput defines the request for emptying a container
type ClearInput struct {
	Name string
}

// ClearOutput defines the response for emptying a container
type ClearOutput struct {
	Container *ContainerView
}

// GetInput defines the request for reading a container
type GetInput struct {
	Name string
}

// GetOutput defines the response for reading a container
type GetOutput struct {
	Container *ContainerView
}

// DeleteInput defines the request for deleting a container
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the response for deleting a container
type DeleteOutput struct{}

// ListInput defines the request for listing containers
type ListInput struct{}

// ListOutput defines the response for listing containers
type ListOutput struct {
	Names []string
}

func newContainerView(name string, c *entities.Container[item.Item]) *ContainerView {
	view := &ContainerView{
		Name:     name,
		Capacity: c.Capacity(),
		Occupied: c.Occupied(),
		Slots:    make([]SlotView, 0, c.Capacity()),
	}
	for i, slot := range c.All() {
		sv := SlotView{Index: i}
		if stack, ok := slot.Stack(); ok {
			it := stack.Entry()
			sv.StackID = stack.ID()
			sv.Count = stack.Count()
			sv.Item = &it
		}
		view.Slots = append(view.Slots, sv)
	}
	return view
}

func newStackView(stack *entities.Stack[item.Item]) StackView {
	return StackView{
		StackID: stack.ID(),
		Count:   stack.Count(),
		Item:    stack.Entry(),
	}
}
