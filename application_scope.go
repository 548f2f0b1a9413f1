package inject

import "sync"

// The application scope is an optional process-wide default scope. A main
// package builds its root scope once and registers it here so libraries
// and handlers can resolve beans without threading the scope through every
// call site.

var (
	appScopeMu sync.RWMutex
	appScope   Scope
)

// RegisterApplicationScope installs the process-wide default scope. It may
// be set exactly once; a second call fails with ErrScopeAlreadySet.
func RegisterApplicationScope(scope Scope) error {
	appScopeMu.Lock()
	defer appScopeMu.Unlock()
	if appScope != nil {
		return ErrScopeAlreadySet
	}
	appScope = scope
	return nil
}

// ApplicationScope returns the process-wide default scope, or nil when none
// has been registered.
func ApplicationScope() Scope {
	appScopeMu.RLock()
	defer appScopeMu.RUnlock()
	return appScope
}

// resetApplicationScope clears the default scope. Tests only.
func resetApplicationScope() {
	appScopeMu.Lock()
	defer appScopeMu.Unlock()
	appScope = nil
}
