package inventory

import "reflect"

// Entry is the capability contract every stored value satisfies.
// The container never looks at anything else on the value.
type Entry interface {
	// UniqueName decides whether two entries are the same kind for stacking.
	UniqueName() string
	// IsCountable selects the stacking (true) or one-unit-per-slot (false) path.
	IsCountable() bool
	// MaxCount is the largest quantity one stack of this kind may hold.
	MaxCount() int
}

// Cloner is implemented by entries that want an independent copy for every
// stack the container opens. Entries that are plain values do not need it;
// pointer entries without it are shared between the stacks created from them.
type Cloner[T Entry] interface {
	Clone() T
}

func cloneEntry[T Entry](entry T) T {
	if c, ok := any(entry).(Cloner[T]); ok {
		return c.Clone()
	}
	return entry
}

func isNilEntry(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
