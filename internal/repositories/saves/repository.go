// Package saves stores opaque save blobs by name.
//
// Backends differ only in where the bytes live: a directory of files, Redis,
// SQLite or process memory. Every backend validates names the same way and
// reports a missing save as errors.NotFound.
package saves

//go:generate mockgen -destination=mock/mock_repository.go -package=savesmock github.com/KirkDiggler/rpg-inventory/internal/repositories/saves Repository

import (
	"context"
	"time"
)

// Repository defines the interface for save persistence
type Repository interface {
	// Store writes data under name, replacing any previous save
	// Returns errors.InvalidArgument for invalid names or empty data
	// Returns errors.Internal for storage failures
	Store(ctx context.Context, input StoreInput) (*StoreOutput, error)

	// Load reads the save called name
	// Returns errors.InvalidArgument for invalid names
	// Returns errors.NotFound if no save exists
	// Returns errors.Internal for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete removes the save called name
	// Returns errors.InvalidArgument for invalid names
	// Returns errors.NotFound if no save exists
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns the names of all saves in ascending order
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Close releases resources held by the backend
	Close() error
}

// StoreInput defines the input for storing a save
type StoreInput struct {
	Name string
	Data []byte
}

// StoreOutput defines the output for storing a save
type StoreOutput struct {
	SavedAt time.Time
}

// LoadInput defines the input for loading a save
type LoadInput struct {
	Name string
}

// LoadOutput defines the output for loading a save
type LoadOutput struct {
	Name    string
	Data    []byte
	SavedAt time.Time
}

// DeleteInput defines the input for deleting a save
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the output for deleting a save
type DeleteOutput struct{}

// ListInput defines the input for listing saves
type ListInput struct{}

// ListOutput defines the output for listing saves
type ListOutput struct {
	Names []string
}
