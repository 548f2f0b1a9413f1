package inject

import (
	"fmt"
	"reflect"
	"sync"
)

// Scope is one level of a hierarchical bean container. It owns the beans
// registered with its builder and delegates lookup misses to its optional
// parent scope.
//
// All lookup methods are safe for concurrent use without locking: the
// underlying bean map is immutable once the scope is built. Close is
// guarded by a per-scope lock and is idempotent.
type Scope interface {
	// Get returns the single bean registered for typ, resolving locally
	// first and then through the parent chain. Pass the empty string when
	// no qualifier is needed. It fails with ErrBeanNotFound when no scope
	// in the chain has a match, and with ErrAmbiguousBean when a
	// qualifier-less lookup matches more than one local bean.
	Get(typ reflect.Type, name string) (any, error)

	// GetOptional is Get with an explicit absence marker instead of
	// ErrBeanNotFound: the boolean reports whether a bean was found.
	// Ambiguity is still reported through the error.
	GetOptional(typ reflect.Type, name string) (any, bool, error)

	// GetStrict returns the bean registered with exactly the given
	// case-sensitive qualifier under any of the candidate types, walking
	// the parent chain. It never falls back to an unqualified match.
	GetStrict(name string, types ...reflect.Type) (any, bool)

	// List returns every bean registered for typ: local beans in
	// registration order followed by the parent's. When the local
	// contribution is empty the parent's slice is returned directly with
	// no copy; callers must treat the result as read-only.
	List(typ reflect.Type) []any

	// ListByPriority returns List(typ) reordered by the scope's priority
	// extractor. When no element declares a priority the list is returned
	// in registration order untouched; otherwise undeclared elements
	// default to DefaultPriority and a stable ascending sort is applied.
	ListByPriority(typ reflect.Type) ([]any, error)

	// ListByPriorityWith is ListByPriority with a caller-supplied
	// extractor.
	ListByPriorityWith(typ reflect.Type, extractor PriorityExtractor) ([]any, error)

	// ListByMarker returns every bean whose registration carries the
	// marker type, local before parent.
	ListByMarker(marker reflect.Type) []any

	// Map returns the beans registered for typ keyed by qualifier name
	// across the whole chain, with local entries shadowing parent entries
	// of the same name.
	Map(typ reflect.Type) map[string]any

	// All returns every entry across the scope chain, each instance
	// exactly once, parent entries before local ones.
	All() []*BeanEntry

	// Contains reports whether any scope in the chain has a bean
	// registered for typ.
	Contains(typ reflect.Type) bool

	// Close fires the pre-destroy actions in registration order, exactly
	// once. A failing action is logged and does not stop later actions.
	// Repeated calls are no-ops.
	Close()
}

type beanScope struct {
	mu            sync.Mutex
	logger        Logger
	beans         *beanMap
	postConstruct []func() error
	preDestroy    []func() error
	parent        *beanScope
	extractor     PriorityExtractor
	observers     []ObserverFunc
	hook          *shutdownHook
	started       bool
	closed        bool
	shutdown      bool
}

func (s *beanScope) String() string {
	return fmt.Sprintf("BeanScope{%s}", s.beans)
}

func (s *beanScope) Get(typ reflect.Type, name string) (any, error) {
	entry, err := s.beans.get(typ, name)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry.bean, nil
	}
	if s.parent != nil {
		return s.parent.Get(typ, name)
	}
	if name != "" {
		return nil, fmt.Errorf("%w: type %s name %q", ErrBeanNotFound, typ, name)
	}
	return nil, fmt.Errorf("%w: type %s", ErrBeanNotFound, typ)
}

func (s *beanScope) GetOptional(typ reflect.Type, name string) (any, bool, error) {
	entry, err := s.beans.get(typ, name)
	if err != nil {
		return nil, false, err
	}
	if entry != nil {
		return entry.bean, true, nil
	}
	if s.parent != nil {
		return s.parent.GetOptional(typ, name)
	}
	return nil, false, nil
}

func (s *beanScope) GetStrict(name string, types ...reflect.Type) (any, bool) {
	for _, typ := range types {
		if entry := s.beans.getStrict(typ, name); entry != nil {
			return entry.bean, true
		}
	}
	if s.parent != nil {
		return s.parent.GetStrict(name, types...)
	}
	return nil, false
}

func (s *beanScope) List(typ reflect.Type) []any {
	values := s.beans.all(typ)
	if s.parent == nil {
		return values
	}
	return combine(values, s.parent.List(typ))
}

func (s *beanScope) listEntries(typ reflect.Type) []*BeanEntry {
	entries := s.beans.allEntries(typ)
	if s.parent == nil {
		return entries
	}
	return combine(entries, s.parent.listEntries(typ))
}

// combine merges local values with parent values, local first. Either side
// is returned as-is when the other is empty; both slices are owned by their
// scopes so the merged case always allocates.
func combine[T any](values, parentValues []T) []T {
	switch {
	case len(values) == 0:
		return parentValues
	case len(parentValues) == 0:
		return values
	default:
		merged := make([]T, 0, len(values)+len(parentValues))
		merged = append(merged, values...)
		return append(merged, parentValues...)
	}
}

func (s *beanScope) ListByPriority(typ reflect.Type) ([]any, error) {
	return s.ListByPriorityWith(typ, s.extractor)
}

func (s *beanScope) ListByPriorityWith(typ reflect.Type, extractor PriorityExtractor) ([]any, error) {
	list := s.List(typ)
	if len(list) < 2 {
		return list, nil
	}
	return sortByPriority(list, s.listEntries(typ), extractor)
}

func (s *beanScope) ListByMarker(marker reflect.Type) []any {
	values := s.beans.allByMarker(marker)
	if s.parent == nil {
		return values
	}
	return combine(values, s.parent.ListByMarker(marker))
}

func (s *beanScope) Map(typ reflect.Type) map[string]any {
	dest := make(map[string]any)
	s.mapInto(typ, dest)
	return dest
}

func (s *beanScope) mapInto(typ reflect.Type, dest map[string]any) {
	if s.parent != nil {
		s.parent.mapInto(typ, dest)
	}
	s.beans.mapInto(typ, dest)
}

func (s *beanScope) All() []*BeanEntry {
	set := newEntrySet()
	s.addAll(set)
	return set.entries()
}

func (s *beanScope) addAll(set *entrySet) {
	if s.parent != nil {
		s.parent.addAll(set)
	}
	s.beans.addAll(set)
}

func (s *beanScope) Contains(typ reflect.Type) bool {
	if s.beans.contains(typ) {
		return true
	}
	return s.parent != nil && s.parent.Contains(typ)
}

// start fires the post-construct callbacks in registration order, exactly
// once. A failing callback aborts the remaining callbacks and propagates:
// startup failure halts the system, unlike best-effort shutdown.
func (s *beanScope) start() error {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return nil
	}
	s.logger.Debug("Firing postConstruct callbacks", "count", len(s.postConstruct))
	for i, callback := range s.postConstruct {
		if err := callback(); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("postConstruct callback %d failed: %w", i, err)
		}
	}
	s.started = true
	s.mu.Unlock()

	s.notify(EventTypeScopeStarted, map[string]any{"beans": s.beans.size()})
	return nil
}

func (s *beanScope) Close() {
	s.mu.Lock()
	if s.hook != nil && !s.shutdown {
		// explicit close before process exit; the hook must not fire later
		s.hook.deregister()
		s.hook = nil
	}
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.logger.Debug("Firing preDestroy callbacks", "count", len(s.preDestroy))
	var failed []int
	for i, action := range s.preDestroy {
		if err := action(); err != nil {
			s.logger.Error("Error during preDestroy lifecycle callback", "index", i, "error", err)
			failed = append(failed, i)
		}
	}
	s.mu.Unlock()

	for _, i := range failed {
		s.notify(EventTypePreDestroyFailed, map[string]any{"index": i})
	}
	s.notify(EventTypeScopeClosed, map[string]any{"preDestroyFailures": len(failed)})
}

// shutdownFromHook is the process-exit close path. The shutdown flag keeps
// Close from trying to deregister the hook while the hook itself is firing.
func (s *beanScope) shutdownFromHook() {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
	s.Close()
}
