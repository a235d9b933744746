// Package inventory implements the orchestrator for named, persisted
// containers of items. Every mutation loads the container, applies one
// operation and saves it back while holding that container's lock.
package inventory

import (
	"context"
	"log/slog"
	"sync"

	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/item"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/persistence"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/saves"
)

// Service defines the interface for container operations
type Service interface {
	// Create makes an empty container
	// Returns errors.AlreadyExists unless Overwrite is set
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// AddItem places items, merging into existing stacks first.
	// When only part fits the container is still saved and the output is
	// returned together with an errors.Full error.
	AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error)

	// RemoveItem removes items from one stack
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error)

	// Sort reorders the slots
	Sort(ctx context.Context, input *SortInput) (*SortOutput, error)

	// Resize changes the capacity and reports the stacks that no longer fit
	Resize(ctx context.Context, input *ResizeInput) (*ResizeOutput, error)

	// Clear empties a container
	Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error)

	// Get reads a container
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a container
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// List returns the names of all containers
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// Store persists containers by name
type Store interface {
	Save(ctx context.Context, input persistence.SaveInput[item.Item]) (*persistence.SaveOutput, error)
	Load(ctx context.Context, input persistence.LoadInput) (*persistence.LoadOutput[item.Item], error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Config holds the dependencies for the inventory orchestrator
type Config struct {
	Store       Store
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type orchestrator struct {
	store Store
	idGen idgen.Generator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrchestrator creates a new inventory orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		store: cfg.Store,
		idGen: cfg.IDGenerator,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// lock serializes operations on one container name
func (o *orchestrator) lock(name string) func() {
	o.mu.Lock()
	l, ok := o.locks[name]
	if !ok {
		l = &sync.Mutex{}
		o.locks[name] = l
	}
	o.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// mutate runs fn on the named container and saves the result. fn decides
// whether the container changed; a false return skips the save.
func (o *orchestrator) mutate(ctx context.Context, name string, fn func(c *entities.Container[item.Item]) (bool, error)) (*entities.Container[item.Item], error) {
	if err := saves.ValidateName(name); err != nil {
		return nil, err
	}

	unlock := o.lock(name)
	defer unlock()

	loaded, err := o.store.Load(ctx, persistence.LoadInput{Name: name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load container %s", name)
	}
	c := loaded.Container

	changed, opErr := fn(c)
	if changed {
		if _, err := o.store.Save(ctx, persistence.SaveInput[item.Item]{Name: name, Container: c}); err != nil {
			return nil, errors.Wrapf(err, "failed to save container %s", name)
		}
	}
	return c, opErr
}

// Create makes an empty container
func (o *orchestrator) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := saves.ValidateName(input.Name); err != nil {
		return nil, err
	}

	c, err := entities.New[item.Item](&entities.Config{
		Capacity:    input.Capacity,
		IDGenerator: o.idGen,
	})
	if err != nil {
		return nil, err
	}

	unlock := o.lock(input.Name)
	defer unlock()

	if !input.Overwrite {
		_, err := o.store.Load(ctx, persistence.LoadInput{Name: input.Name})
		switch {
		case err == nil:
			return nil, errors.AlreadyExistsf("container %s already exists", input.Name).
				WithName(input.Name)
		case !errors.IsNotFound(err):
			return nil, errors.Wrapf(err, "failed to check container %s", input.Name)
		}
	}

	if _, err := o.store.Save(ctx, persistence.SaveInput[item.Item]{Name: input.Name, Container: c}); err != nil {
		return nil, errors.Wrapf(err, "failed to save container %s", input.Name)
	}

	slog.InfoContext(ctx, "created container",
		"name", input.Name,
		"capacity", input.Capacity,
		"overwrite", input.Overwrite)

	return &CreateOutput{Container: newContainerView(input.Name, c)}, nil
}

// AddItem places items into a container
func (o *orchestrator) AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Item.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid item %q", input.Item.Name)
	}

	var result entities.AddResult
	c, err := o.mutate(ctx, input.Name, func(c *entities.Container[item.Item]) (bool, error) {
		var addErr error
		result, addErr = c.Add(input.Item, input.Quantity)
		return result.Added > 0, addErr
	})
	if err != nil && !errors.IsFull(err) {
		return nil, err
	}

	output := &AddItemOutput{
		Status:    result.Status,
		Slot:      result.Index,
		Added:     result.Added,
		Remaining: result.Remaining,
		Container: newContainerView(input.Name, c),
	}

	if err != nil {
		slog.WarnContext(ctx, "items did not fit",
			"name", input.Name,
			"item", input.Item.Name,
			"status", result.Status.String(),
			"added", result.Added,
			"remaining", result.Remaining)
		return output, err
	}

	slog.InfoContext(ctx, "added items",
		"name", input.Name,
		"item", input.Item.Name,
		"quantity", input.Quantity,
		"slot", result.Index)

	return output, nil
}

// RemoveItem removes items from one stack
func (o *orchestrator) RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if (input.StackID == "") == (input.Slot == nil) {
		return nil, errors.InvalidArgument("exactly one of stack id and slot is required")
	}

	var status entities.RemoveStatus
	c, err := o.mutate(ctx, input.Name, func(c *entities.Container[item.Item]) (bool, error) {
		var removeErr error
		if input.StackID != "" {
			status, removeErr = c.RemoveByID(input.StackID, input.Quantity)
		} else {
			status, removeErr = c.RemoveAt(*input.Slot, input.Quantity)
		}
		return status != entities.RemoveRejected, removeErr
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "removed items",
		"name", input.Name,
		"stack_id", input.StackID,
		"quantity", input.Quantity,
		"status", status.String())

	return &RemoveItemOutput{
		Status:    status,
		Container: newContainerView(input.Name, c),
	}, nil
}

// Sort reorders the slots
func (o *orchestrator) Sort(ctx context.Context, input *SortInput) (*SortOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.Name, func(c *entities.Container[item.Item]) (bool, error) {
		if input.ByName {
			c.Sort(entities.ByName[item.Item])
		} else {
			c.Sort(nil)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "sorted container",
		"name", input.Name,
		"by_name", input.ByName)

	return &SortOutput{Container: newContainerView(input.Name, c)}, nil
}

// Resize changes the capacity of a container
func (o *orchestrator) Resize(ctx context.Context, input *ResizeInput) (*ResizeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var dropped []*entities.Stack[item.Item]
	c, err := o.mutate(ctx, input.Name, func(c *entities.Container[item.Item]) (bool, error) {
		var resizeErr error
		dropped, resizeErr = c.Resize(input.Capacity)
		return resizeErr == nil, resizeErr
	})
	if err != nil {
		return nil, err
	}

	output := &ResizeOutput{
		Dropped:   make([]StackView, 0, len(dropped)),
		Container: newContainerView(input.Name, c),
	}
	for _, stack := range dropped {
		output.Dropped = append(output.Dropped, newStackView(stack))
	}

	if len(dropped) > 0 {
		slog.WarnContext(ctx, "resize dropped stacks",
			"name", input.Name,
			"capacity", input.Capacity,
			"dropped", len(dropped))
	}

	return output, nil
}

// Clear empties a container
func (o *orchestrator) Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.Name, func(c *entities.Container[item.Item]) (bool, error) {
		c.Clear()
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "cleared container", "name", input.Name)
	return &ClearOutput{Container: newContainerView(input.Name, c)}, nil
}

// Get reads a container
func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.Name, func(*entities.Container[item.Item]) (bool, error) {
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &GetOutput{Container: newContainerView(input.Name, c)}, nil
}

// Delete removes a container
func (o *orchestrator) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := saves.ValidateName(input.Name); err != nil {
		return nil, err
	}

	unlock := o.lock(input.Name)
	defer unlock()

	if err := o.store.Delete(ctx, input.Name); err != nil {
		return nil, errors.Wrapf(err, "failed to delete container %s", input.Name)
	}

	slog.InfoContext(ctx, "deleted container", "name", input.Name)
	return &DeleteOutput{}, nil
}

// List returns the names of all containers
func (o *orchestrator) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	names, err := o.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list containers")
	}
	return &ListOutput{Names: names}, nil
}
