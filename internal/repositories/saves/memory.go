package saves

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
)

type memoryRecord struct {
	data    []byte
	savedAt time.Time
}

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	clock   clock.Clock
}

// MemoryConfig contains configuration for the in-memory repository
type MemoryConfig struct {
	Clock clock.Clock
}

// NewMemory creates a repository that keeps saves in process memory.
// A nil config is allowed.
func NewMemory(cfg *MemoryConfig) Repository {
	c := clock.New()
	if cfg != nil && cfg.Clock != nil {
		c = cfg.Clock
	}
	return &memoryRepository{
		records: make(map[string]memoryRecord),
		clock:   c,
	}
}

func (r *memoryRepository) Store(_ context.Context, input StoreInput) (*StoreOutput, error) {
	if err := validateStore(input); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[input.Name] = memoryRecord{data: slices.Clone(input.Data), savedAt: now}

	return &StoreOutput{SavedAt: now}, nil
}

func (r *memoryRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[input.Name]
	if !ok {
		return nil, notFound(input.Name)
	}

	return &LoadOutput{
		Name:    input.Name,
		Data:    slices.Clone(rec.data),
		SavedAt: rec.savedAt,
	}, nil
}

func (r *memoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[input.Name]; !ok {
		return nil, notFound(input.Name)
	}
	delete(r.records, input.Name)

	return &DeleteOutput{}, nil
}

func (r *memoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	slices.Sort(names)

	return &ListOutput{Names: names}, nil
}

func (r *memoryRepository) Close() error {
	return nil
}
