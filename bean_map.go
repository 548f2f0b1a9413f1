package inject

import (
	"fmt"
	"reflect"
	"strings"
)

// qualifiedKey indexes the single bean registered under a type with a
// specific qualifier name.
type qualifiedKey struct {
	typ  reflect.Type
	name string
}

// typeIndex holds the beans registered under one type, in registration
// order. The values slice parallels entries and is handed out directly by
// lookups, so it must never be mutated after scope construction.
type typeIndex struct {
	entries []*BeanEntry
	values  []any
}

func (x *typeIndex) add(entry *BeanEntry) {
	x.entries = append(x.entries, entry)
	x.values = append(x.values, entry.bean)
}

// beanMap is the ordered, type-indexed lookup structure holding all entries
// produced within one scope. Entries are added exactly once during scope
// construction, never removed, never mutated; all lookups after that are
// read-only and need no synchronization.
type beanMap struct {
	byType   map[reflect.Type]*typeIndex
	byMarker map[reflect.Type]*typeIndex
	byName   map[qualifiedKey]*BeanEntry
	entries  []*BeanEntry
}

func newBeanMap() *beanMap {
	return &beanMap{
		byType:   make(map[reflect.Type]*typeIndex),
		byMarker: make(map[reflect.Type]*typeIndex),
		byName:   make(map[qualifiedKey]*BeanEntry),
	}
}

// add registers the entry under each of its declared types and markers.
// Only called during scope assembly.
func (m *beanMap) add(entry *BeanEntry) error {
	for _, t := range entry.types {
		if entry.name != "" {
			if m.containsQualified(t, entry.name) {
				return fmt.Errorf("%w: type %s name %q", ErrDuplicateQualifier, t, entry.name)
			}
			m.byName[qualifiedKey{typ: t, name: entry.name}] = entry
		}
		idx := m.byType[t]
		if idx == nil {
			idx = &typeIndex{}
			m.byType[t] = idx
		}
		idx.add(entry)
	}
	for _, marker := range entry.markers {
		idx := m.byMarker[marker]
		if idx == nil {
			idx = &typeIndex{}
			m.byMarker[marker] = idx
		}
		idx.add(entry)
	}
	m.entries = append(m.entries, entry)
	return nil
}

// get performs a singular lookup. It returns (nil, nil) when nothing is
// registered locally so the owning scope can delegate to its parent.
//
// Without a name the lookup succeeds only when exactly one bean is
// registered under the type; two or more is an explicit ambiguity error,
// never a silent first match. With a name the qualifier index is consulted
// first, then a lenient case-insensitive match over the type's entries.
func (m *beanMap) get(typ reflect.Type, name string) (*BeanEntry, error) {
	idx := m.byType[typ]
	if name == "" {
		if idx == nil {
			return nil, nil
		}
		if len(idx.entries) > 1 {
			return nil, fmt.Errorf("%w: %d beans for type %s", ErrAmbiguousBean, len(idx.entries), typ)
		}
		return idx.entries[0], nil
	}
	if entry, ok := m.byName[qualifiedKey{typ: typ, name: name}]; ok {
		return entry, nil
	}
	if idx != nil {
		for _, entry := range idx.entries {
			if strings.EqualFold(entry.name, name) {
				return entry, nil
			}
		}
	}
	return nil, nil
}

// getStrict requires an exact, case-sensitive qualifier match and never
// falls back to an unqualified match.
func (m *beanMap) getStrict(typ reflect.Type, name string) *BeanEntry {
	return m.byName[qualifiedKey{typ: typ, name: name}]
}

// all returns every instance registered under typ, in registration order.
// The returned slice is the map's own backing slice; callers must treat it
// as read-only.
func (m *beanMap) all(typ reflect.Type) []any {
	if idx := m.byType[typ]; idx != nil {
		return idx.values
	}
	return nil
}

func (m *beanMap) allEntries(typ reflect.Type) []*BeanEntry {
	if idx := m.byType[typ]; idx != nil {
		return idx.entries
	}
	return nil
}

// allByMarker is the marker-keyed analogue of all.
func (m *beanMap) allByMarker(marker reflect.Type) []any {
	if idx := m.byMarker[marker]; idx != nil {
		return idx.values
	}
	return nil
}

func (m *beanMap) contains(typ reflect.Type) bool {
	return m.byType[typ] != nil
}

// containsQualified reports whether a bean is registered under typ with
// exactly the given qualifier.
func (m *beanMap) containsQualified(typ reflect.Type, name string) bool {
	_, ok := m.byName[qualifiedKey{typ: typ, name: name}]
	return ok
}

// addAll merges this map's entries into the identity-keyed accumulator.
// An entry registered under several types is added once per registration,
// not per type, so the accumulator sees each instance exactly once.
func (m *beanMap) addAll(set *entrySet) {
	for _, entry := range m.entries {
		set.add(entry)
	}
}

// mapInto collects the beans registered under typ keyed by qualifier name.
// Callers layer parent maps first so local entries shadow parent entries
// with the same name.
func (m *beanMap) mapInto(typ reflect.Type, dest map[string]any) {
	if idx := m.byType[typ]; idx != nil {
		for _, entry := range idx.entries {
			dest[entry.name] = entry.bean
		}
	}
}

func (m *beanMap) size() int {
	return len(m.entries)
}

func (m *beanMap) String() string {
	names := make([]string, len(m.entries))
	for i, entry := range m.entries {
		names[i] = entry.String()
	}
	return strings.Join(names, "; ")
}
