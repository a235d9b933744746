// Package inventory implements a fixed-capacity, slot-based container for
// stackable and unique entries.
//
// A Container owns a fixed number of slots. Each slot is either empty or
// holds exactly one Stack: an Entry, a quantity and an identifier that is
// assigned once and never reused. Countable entries of the same unique name
// are merged into existing under-filled stacks before new slots are opened;
// non-countable entries take one slot per unit.
//
// Slot indices are not stable across Sort and Resize. Use Contains with a
// stack ID to re-locate a stack after either call.
//
// A Container is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves, for example with one mutex
// per container (see the inventory orchestrator).
package inventory
