package inject

// Get resolves the single bean registered for type T, optionally
// disambiguated by a qualifier name:
//
//	maker, err := inject.Get[*CoffeeMaker](scope)
//	heater, err := inject.Get[Heater](scope, "electric")
func Get[T any](scope Scope, name ...string) (T, error) {
	bean, err := scope.Get(TypeOf[T](), optionalName(name))
	if err != nil {
		var zero T
		return zero, err
	}
	return bean.(T), nil
}

// GetOptional resolves like Get but reports absence through the boolean
// instead of ErrBeanNotFound. The error is reserved for ambiguity.
func GetOptional[T any](scope Scope, name ...string) (T, bool, error) {
	bean, found, err := scope.GetOptional(TypeOf[T](), optionalName(name))
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	return bean.(T), true, nil
}

// List returns every bean registered for type T across the scope chain.
func List[T any](scope Scope) []T {
	return convert[T](scope.List(TypeOf[T]()))
}

// ListByPriority returns List[T] reordered by the scope's priority
// extractor.
func ListByPriority[T any](scope Scope) ([]T, error) {
	list, err := scope.ListByPriority(TypeOf[T]())
	if err != nil {
		return nil, err
	}
	return convert[T](list), nil
}

// Contains reports whether any scope in the chain has a bean registered
// for type T.
func Contains[T any](scope Scope) bool {
	return scope.Contains(TypeOf[T]())
}

func convert[T any](list []any) []T {
	if len(list) == 0 {
		return nil
	}
	out := make([]T, len(list))
	for i, bean := range list {
		out[i] = bean.(T)
	}
	return out
}

func optionalName(name []string) string {
	if len(name) == 0 {
		return ""
	}
	return name[0]
}
