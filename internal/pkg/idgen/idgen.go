// Package idgen names stacks. An ID only has to be unique for the lifetime
// of the process and is never handed out twice.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out identifiers
type Generator interface {
	Generate() string
}

// Func adapts a plain function to Generator
type Func func() string

// Generate calls f
func (f Func) Generate() string {
	return f()
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// UUIDGenerator hands out random v4 UUIDs, "stk_<uuid>" with prefix "stk"
type UUIDGenerator struct {
	prefix string
}

// NewUUID returns a UUID generator. prefix may be empty.
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.NewString())
}

// SequentialGenerator hands out "prefix_1", "prefix_2", ... so tests can
// assert on exact IDs. It is safe for concurrent use.
type SequentialGenerator struct {
	prefix string
	last   atomic.Uint64
}

// NewSequential returns a sequential generator starting at 1
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next ID
func (g *SequentialGenerator) Generate() string {
	return withPrefix(g.prefix, strconv.FormatUint(g.last.Add(1), 10))
}
