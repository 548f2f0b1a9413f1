package inject

import (
	"errors"
	"fmt"
	"reflect"
)

// Option represents a functional option for configuring a scope under
// construction.
type Option func(*BeanScopeBuilder) error

// BeanOption configures a single bean registration passed to Provide.
type BeanOption func(*beanRegistration) error

type beanRegistration struct {
	entry    *BeanEntry
	requires []propertyRequirement
}

// BeanScopeBuilder assembles a Scope from producer-supplied registrations.
// Every bean handed to Provide is already constructed, in dependency order;
// the builder only assembles the lookup structures and wires the lifecycle.
//
// Registration methods are fluent and collect errors; Build surfaces them
// all at once.
type BeanScopeBuilder struct {
	registrations []*beanRegistration
	postConstruct []func() error
	preDestroy    []func() error
	parent        Scope
	logger        Logger
	observers     []ObserverFunc
	extractor     PriorityExtractor
	properties    PropertyPlugin
	shutdownHook  bool
	errs          []error
}

// NewBeanScopeBuilder creates a builder, applying any scope options.
func NewBeanScopeBuilder(opts ...Option) *BeanScopeBuilder {
	builder := &BeanScopeBuilder{
		extractor: declaredPriorityExtractor{},
	}
	for _, opt := range opts {
		if err := opt(builder); err != nil {
			builder.errs = append(builder.errs, err)
		}
	}
	return builder
}

// WithParent sets the parent scope for delegated lookups. The child scope
// holds a non-owning reference: closing the child never closes the parent.
func WithParent(parent Scope) Option {
	return func(b *BeanScopeBuilder) error {
		if _, ok := parent.(*beanScope); !ok {
			return fmt.Errorf("%w: %T", ErrForeignScope, parent)
		}
		b.parent = parent
		return nil
	}
}

// WithLogger sets the logger used for lifecycle logging. Defaults to a
// slog-backed logger.
func WithLogger(logger Logger) Option {
	return func(b *BeanScopeBuilder) error {
		b.logger = logger
		return nil
	}
}

// WithShutdownHook ties the scope's destruction to process exit: a
// SIGINT/SIGTERM handler closes the scope. An explicit Close beforehand
// deregisters the handler so destroy actions never run twice.
func WithShutdownHook() Option {
	return func(b *BeanScopeBuilder) error {
		b.shutdownHook = true
		return nil
	}
}

// WithObserver registers observers notified of scope lifecycle events as
// CloudEvents.
func WithObserver(observers ...ObserverFunc) Option {
	return func(b *BeanScopeBuilder) error {
		b.observers = append(b.observers, observers...)
		return nil
	}
}

// WithPriorityExtractor replaces the default priority extractor used by
// ListByPriority.
func WithPriorityExtractor(extractor PriorityExtractor) Option {
	return func(b *BeanScopeBuilder) error {
		b.extractor = extractor
		return nil
	}
}

// WithProperties supplies the property plugin consulted for conditional
// registrations. Without one, every RequiresProperty condition is treated
// as unsatisfied.
func WithProperties(properties PropertyPlugin) Option {
	return func(b *BeanScopeBuilder) error {
		b.properties = properties
		return nil
	}
}

// Provide registers a constructed bean. With no options the bean is
// registered under its own concrete type; use As to declare the interfaces
// it should be visible through, Named for a qualifier, WithPriority for
// ordering, and WithMarker to tag it for ListByMarker.
func (b *BeanScopeBuilder) Provide(bean any, opts ...BeanOption) *BeanScopeBuilder {
	if bean == nil {
		b.errs = append(b.errs, ErrNilBean)
		return b
	}
	reg := &beanRegistration{entry: &BeanEntry{bean: bean}}
	for _, opt := range opts {
		if err := opt(reg); err != nil {
			b.errs = append(b.errs, err)
			return b
		}
	}
	beanType := reflect.TypeOf(bean)
	if len(reg.entry.types) == 0 {
		reg.entry.types = []reflect.Type{beanType}
	} else {
		for _, t := range reg.entry.types {
			if !assignable(beanType, t) {
				b.errs = append(b.errs, fmt.Errorf("%w: %s as %s", ErrTypeNotAssignable, beanType, t))
				return b
			}
		}
	}
	b.registrations = append(b.registrations, reg)
	return b
}

// As declares the types a bean is registered under, typically the
// interfaces it implements:
//
//	builder.Provide(heater, inject.As(inject.TypeOf[Heater]()))
func As(types ...reflect.Type) BeanOption {
	return func(reg *beanRegistration) error {
		reg.entry.types = append(reg.entry.types, types...)
		return nil
	}
}

// Named sets the qualifier name disambiguating beans of the same type.
func Named(name string) BeanOption {
	return func(reg *beanRegistration) error {
		reg.entry.name = name
		return nil
	}
}

// WithPriority declares the bean's priority for ListByPriority ordering.
// Lower values sort first.
func WithPriority(priority int) BeanOption {
	return func(reg *beanRegistration) error {
		reg.entry.priority = priority
		reg.entry.priorityDefined = true
		return nil
	}
}

// WithMarker tags the registration with marker types for ListByMarker.
func WithMarker(markers ...reflect.Type) BeanOption {
	return func(reg *beanRegistration) error {
		reg.entry.markers = append(reg.entry.markers, markers...)
		return nil
	}
}

// RequiresProperty makes the registration conditional: the bean is only
// included when the builder's property plugin reports the key present
// (value empty) or equal to value.
func RequiresProperty(key, value string) BeanOption {
	return func(reg *beanRegistration) error {
		reg.requires = append(reg.requires, propertyRequirement{key: key, value: value})
		return nil
	}
}

// RequiresMissingProperty makes the registration conditional on the key
// being absent from the property plugin.
func RequiresMissingProperty(key string) BeanOption {
	return func(reg *beanRegistration) error {
		reg.requires = append(reg.requires, propertyRequirement{key: key, missing: true})
		return nil
	}
}

// PostConstruct registers a callback fired once when the scope starts,
// in registration order. A failing callback aborts startup.
func (b *BeanScopeBuilder) PostConstruct(callback func() error) *BeanScopeBuilder {
	b.postConstruct = append(b.postConstruct, callback)
	return b
}

// PreDestroy registers a cleanup action fired once when the scope closes,
// in registration order. Failures are logged and isolated per action.
func (b *BeanScopeBuilder) PreDestroy(action func() error) *BeanScopeBuilder {
	b.preDestroy = append(b.preDestroy, action)
	return b
}

// Build assembles the bean map, constructs the scope and fires the
// post-construct callbacks. A post-construct failure aborts the remaining
// callbacks and is returned; shutdown hooks registered for the scope are
// deregistered on failure.
func (b *BeanScopeBuilder) Build() (Scope, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	logger := b.logger
	if logger == nil {
		logger = defaultLogger()
	}

	beans := newBeanMap()
	for _, reg := range b.registrations {
		if skip, req := unsatisfied(reg, b.properties); skip {
			logger.Debug("Skipping conditional registration", "bean", reg.entry.String(), "requires", req.key)
			continue
		}
		if err := beans.add(reg.entry); err != nil {
			return nil, err
		}
	}

	scope := &beanScope{
		logger:        logger,
		beans:         beans,
		postConstruct: b.postConstruct,
		preDestroy:    b.preDestroy,
		extractor:     b.extractor,
		observers:     b.observers,
	}
	if b.parent != nil {
		scope.parent = b.parent.(*beanScope)
	}
	if b.shutdownHook {
		scope.hook = newShutdownHook(scope)
	}
	if err := scope.start(); err != nil {
		if scope.hook != nil {
			scope.hook.deregister()
			scope.hook = nil
		}
		return nil, err
	}
	return scope, nil
}

func unsatisfied(reg *beanRegistration, properties PropertyPlugin) (bool, propertyRequirement) {
	for _, req := range reg.requires {
		if !req.satisfied(properties) {
			return true, req
		}
	}
	return false, propertyRequirement{}
}

// assignable reports whether a bean of type beanType may be registered
// under declared.
func assignable(beanType, declared reflect.Type) bool {
	if beanType.AssignableTo(declared) {
		return true
	}
	return declared.Kind() == reflect.Interface && beanType.Implements(declared)
}
