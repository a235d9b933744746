// Package persistence saves and loads containers by name.
//
// A container is captured as a snapshot, encoded with the configured codec
// and sealed in an envelope carrying the codec name, a timestamp and a blake3
// checksum. The envelope bytes are handed to a saves.Repository. Loading
// reverses the steps and rejects anything that does not verify.
package persistence

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-inventory/internal/codec"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/saves"
)

// Config contains the dependencies of an Adapter
type Config struct {
	Repository saves.Repository
	// Codec encodes new saves; saves written with another codec still load
	Codec codec.Codec
	Clock clock.Clock
	// IDGenerator names stacks created in loaded containers
	IDGenerator idgen.Generator
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Repository == nil {
		vb.RequiredField("Repository")
	}
	if cfg.Codec == nil {
		vb.RequiredField("Codec")
	}
	return vb.Build()
}

// Adapter persists containers of T
type Adapter[T inventory.Entry] struct {
	repo  saves.Repository
	codec codec.Codec
	clock clock.Clock
	idGen idgen.Generator
}

// NewAdapter creates an Adapter
func NewAdapter[T inventory.Entry](cfg *Config) (*Adapter[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Adapter[T]{
		repo:  cfg.Repository,
		codec: cfg.Codec,
		clock: c,
		idGen: cfg.IDGenerator,
	}, nil
}

// SaveInput defines the input for Save
type SaveInput[T inventory.Entry] struct {
	Name      string
	Container *inventory.Container[T]
}

// SaveOutput defines the output for Save
type SaveOutput struct {
	Bytes int
}

// Save snapshots the container and stores it under Name
func (a *Adapter[T]) Save(ctx context.Context, input SaveInput[T]) (*SaveOutput, error) {
	if input.Container == nil {
		return nil, errors.InvalidArgument("container is required")
	}
	if err := saves.ValidateName(input.Name); err != nil {
		return nil, err
	}

	payload, err := a.codec.Marshal(input.Container.Snapshot())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode container %s", input.Name)
	}

	data, err := sealEnvelope(a.codec, payload, a.clock.Now())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to seal container %s", input.Name)
	}

	if _, err := a.repo.Store(ctx, saves.StoreInput{Name: input.Name, Data: data}); err != nil {
		return nil, errors.Wrapf(err, "failed to store container %s", input.Name)
	}

	slog.DebugContext(ctx, "saved container",
		"name", input.Name,
		"codec", a.codec.Name(),
		"occupied", input.Container.Occupied(),
		"bytes", len(data))

	return &SaveOutput{Bytes: len(data)}, nil
}

// LoadInput defines the input for Load
type LoadInput struct {
	Name string
}

// LoadOutput defines the output for Load
type LoadOutput[T inventory.Entry] struct {
	Container *inventory.Container[T]
	Codec     string
}

// Load reads the container stored under Name. A missing save is NotFound;
// anything that fails to decode or verify is DataLoss.
func (a *Adapter[T]) Load(ctx context.Context, input LoadInput) (*LoadOutput[T], error) {
	stored, err := a.repo.Load(ctx, saves.LoadInput{Name: input.Name})
	if err != nil {
		return nil, err
	}

	env, payloadCodec, err := openEnvelope(stored.Data)
	if err != nil {
		slog.WarnContext(ctx, "rejected corrupt save",
			"name", input.Name,
			"error", err)
		return nil, errors.Wrapf(err, "failed to open save %s", input.Name).WithName(input.Name)
	}

	var snap inventory.Snapshot[T]
	if err := payloadCodec.Unmarshal(env.Payload, &snap); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to decode save %s", input.Name).
			WithName(input.Name)
	}

	container, err := inventory.Restore(snap, a.idGen)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "save %s does not describe a valid container", input.Name).
			WithName(input.Name)
	}

	slog.DebugContext(ctx, "loaded container",
		"name", input.Name,
		"codec", env.Codec,
		"saved_at", env.SavedAt,
		"occupied", container.Occupied())

	return &LoadOutput[T]{Container: container, Codec: env.Codec}, nil
}

// Delete removes the save called name
func (a *Adapter[T]) Delete(ctx context.Context, name string) error {
	if _, err := a.repo.Delete(ctx, saves.DeleteInput{Name: name}); err != nil {
		return err
	}
	slog.DebugContext(ctx, "deleted container", "name", name)
	return nil
}

// List returns the names of all saves
func (a *Adapter[T]) List(ctx context.Context) ([]string, error) {
	out, err := a.repo.List(ctx, saves.ListInput{})
	if err != nil {
		return nil, err
	}
	return out.Names, nil
}
