package inject

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeOf returns the reflect.Type for T. Unlike reflect.TypeOf on a value,
// it works for interface types:
//
//	inject.TypeOf[Heater]()
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// BeanEntry pairs a constructed bean instance with the registration metadata
// the producer declared for it: the types it is registered under, an
// optional qualifier name, an optional priority and optional marker types.
//
// Entries are immutable after scope construction. Identity is instance
// identity, not value equality: two entries holding equal but distinct
// instances are distinct entries.
type BeanEntry struct {
	bean            any
	types           []reflect.Type
	markers         []reflect.Type
	name            string
	priority        int
	priorityDefined bool
}

// Bean returns the bean instance.
func (e *BeanEntry) Bean() any {
	return e.bean
}

// Name returns the qualifier name, or the empty string when the bean was
// registered without one.
func (e *BeanEntry) Name() string {
	return e.name
}

// Types returns the types the bean is registered under.
func (e *BeanEntry) Types() []reflect.Type {
	out := make([]reflect.Type, len(e.types))
	copy(out, e.types)
	return out
}

// Markers returns the marker types attached to the registration.
func (e *BeanEntry) Markers() []reflect.Type {
	out := make([]reflect.Type, len(e.markers))
	copy(out, e.markers)
	return out
}

// Priority returns the priority declared at registration and whether one
// was declared at all.
func (e *BeanEntry) Priority() (int, bool) {
	return e.priority, e.priorityDefined
}

func (e *BeanEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bean %T", e.bean)
	if e.name != "" {
		fmt.Fprintf(&b, " name=%q", e.name)
	}
	if len(e.types) > 0 {
		names := make([]string, len(e.types))
		for i, t := range e.types {
			names[i] = t.String()
		}
		fmt.Fprintf(&b, " types=[%s]", strings.Join(names, ", "))
	}
	return b.String()
}

// identity returns the deduplication key for the entry. Pointer beans key
// on the instance itself so the same object reachable through several
// registrations surfaces once; value beans fall back to per-entry identity
// so equal-but-distinct values never collide.
func (e *BeanEntry) identity() any {
	if reflect.ValueOf(e.bean).Kind() == reflect.Pointer {
		return e.bean
	}
	return e
}

// entrySet is an insertion-ordered accumulator keyed by bean identity.
// Adding an entry whose instance is already present replaces the earlier
// entry in place, so a bean re-exposed by a child scope surfaces once,
// in its parent's position.
type entrySet struct {
	index map[any]int
	order []*BeanEntry
}

func newEntrySet() *entrySet {
	return &entrySet{index: make(map[any]int)}
}

func (s *entrySet) add(entry *BeanEntry) {
	key := entry.identity()
	if i, ok := s.index[key]; ok {
		s.order[i] = entry
		return
	}
	s.index[key] = len(s.order)
	s.order = append(s.order, entry)
}

func (s *entrySet) entries() []*BeanEntry {
	return s.order
}
