package inject

import (
	"errors"
)

// Lookup and registration errors
var (
	// ErrBeanNotFound indicates a required single-bean lookup had no match
	// anywhere in the scope chain
	ErrBeanNotFound = errors.New("bean not found")

	// ErrAmbiguousBean indicates a qualifier-less lookup matched more than
	// one bean of the requested type
	ErrAmbiguousBean = errors.New("multiple beans registered for type, qualifier required")

	// ErrInvalidPriorityMarker indicates a priority extractor failed on an
	// entry; this is an invalid configuration, never defaulted over
	ErrInvalidPriorityMarker = errors.New("invalid priority marker")

	// ErrNilBean indicates a nil instance was passed to Provide
	ErrNilBean = errors.New("bean instance is nil")

	// ErrTypeNotAssignable indicates a bean was registered under a type it
	// does not implement or is not assignable to
	ErrTypeNotAssignable = errors.New("bean not assignable to declared type")

	// ErrDuplicateQualifier indicates two beans of the same type were
	// registered under the same qualifier name
	ErrDuplicateQualifier = errors.New("duplicate qualifier for type")

	// ErrForeignScope indicates a parent scope was supplied that was not
	// built by this package
	ErrForeignScope = errors.New("parent scope was not created by this package")

	// ErrScopeAlreadySet indicates the application scope was registered twice
	ErrScopeAlreadySet = errors.New("application scope already registered")
)
