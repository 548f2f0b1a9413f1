// Package inject provides the runtime half of a compile-time dependency
// injection system: an assembled, queryable bean graph with lifecycle
// management.
//
// A producer (typically generated registration code) constructs every bean
// up front, in dependency order, and hands the constructed instances to a
// BeanScopeBuilder together with the metadata declared for each bean: the
// types it is registered under, an optional qualifier name, an optional
// priority, and optional marker types. Build assembles an immutable bean
// map, fires the post-construct callbacks, and returns a Scope that serves
// lookups for its lifetime.
//
// Scopes form a hierarchy. A child scope resolves lookups locally first and
// delegates misses to its parent, so a test scope or request scope can
// shadow beans owned by the application scope without copying them.
//
// Basic usage:
//
//	scope, err := inject.NewBeanScopeBuilder().
//		Provide(NewHeater(), inject.As(inject.TypeOf[Heater]()), inject.Named("electric")).
//		Provide(NewCoffeeMaker()).
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer scope.Close()
//
//	maker, err := inject.Get[*CoffeeMaker](scope)
//
// Lookups are lock-free: the bean map never changes after Build, so Get,
// List and friends are safe for concurrent use. Lifecycle transitions are
// mutually excluded by a per-scope lock and each fires its callbacks
// exactly once.
package inject
