package inject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type baseIface interface {
	id() string
}

type implA struct{}

func (implA) id() string { return "A" }

type implB struct{}

func (implB) id() string { return "B" }

type implC struct{}

func (implC) id() string { return "C" }

func ids(list []any) []string {
	out := make([]string, len(list))
	for i, bean := range list {
		out[i] = bean.(baseIface).id()
	}
	return out
}

func TestListByPriorityOrdersAscendingWithDefault(t *testing.T) {
	// A declares no priority and defaults to 5000, sorting last
	scope, err := NewBeanScopeBuilder().
		Provide(implA{}, As(TypeOf[baseIface]())).
		Provide(implB{}, As(TypeOf[baseIface]()), WithPriority(20)).
		Provide(implC{}, As(TypeOf[baseIface]()), WithPriority(10)).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	list, err := scope.ListByPriority(TypeOf[baseIface]())
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, ids(list))
}

func TestListByPriorityNoOpWhenNonePriorityDeclared(t *testing.T) {
	scope, err := NewBeanScopeBuilder().
		Provide(implA{}, As(TypeOf[baseIface]())).
		Provide(implB{}, As(TypeOf[baseIface]())).
		Provide(implC{}, As(TypeOf[baseIface]())).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	plain := scope.List(TypeOf[baseIface]())
	sorted, err := scope.ListByPriority(TypeOf[baseIface]())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, ids(sorted))
	// opt-out: the original list comes back untouched, same backing array
	assert.True(t, &plain[0] == &sorted[0], "expected registration-order list to be returned as-is")
}

func TestListByPrioritySortIsStable(t *testing.T) {
	scope, err := NewBeanScopeBuilder().
		Provide(implA{}, As(TypeOf[baseIface]()), WithPriority(10)).
		Provide(implB{}, As(TypeOf[baseIface]()), WithPriority(10)).
		Provide(implC{}, As(TypeOf[baseIface]()), WithPriority(5)).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	list, err := scope.ListByPriority(TypeOf[baseIface]())
	require.NoError(t, err)
	// A and B share a priority and keep their registration order
	assert.Equal(t, []string{"C", "A", "B"}, ids(list))
}

func TestListByPriorityShortLists(t *testing.T) {
	scope, err := NewBeanScopeBuilder().
		Provide(implA{}, As(TypeOf[baseIface]()), WithPriority(10)).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	list, err := scope.ListByPriority(TypeOf[baseIface]())
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(list))

	empty, err := scope.ListByPriority(TypeOf[*pump]())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListByPriorityAcrossScopeChain(t *testing.T) {
	parent, err := NewBeanScopeBuilder().
		Provide(implA{}, As(TypeOf[baseIface]()), WithPriority(1)).
		Build()
	require.NoError(t, err)
	defer parent.Close()

	child, err := NewBeanScopeBuilder(WithParent(parent)).
		Provide(implB{}, As(TypeOf[baseIface]()), WithPriority(2)).
		Build()
	require.NoError(t, err)
	defer child.Close()

	list, err := child.ListByPriority(TypeOf[baseIface]())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, ids(list))
}

func TestListByPriorityWithCustomExtractor(t *testing.T) {
	reversed := PriorityExtractorFunc(func(entry *BeanEntry) (int, bool, error) {
		priority, defined := entry.Priority()
		return -priority, defined, nil
	})

	scope, err := NewBeanScopeBuilder().
		Provide(implB{}, As(TypeOf[baseIface]()), WithPriority(20)).
		Provide(implC{}, As(TypeOf[baseIface]()), WithPriority(10)).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	list, err := scope.ListByPriorityWith(TypeOf[baseIface](), reversed)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, ids(list))
}

func TestListByPriorityExtractorFailureIsFatal(t *testing.T) {
	errMalformed := errors.New("missing value accessor")
	broken := PriorityExtractorFunc(func(entry *BeanEntry) (int, bool, error) {
		return 0, false, errMalformed
	})

	scope, err := NewBeanScopeBuilder(WithPriorityExtractor(broken)).
		Provide(implA{}, As(TypeOf[baseIface]())).
		Provide(implB{}, As(TypeOf[baseIface]())).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	_, err = scope.ListByPriority(TypeOf[baseIface]())
	require.ErrorIs(t, err, ErrInvalidPriorityMarker)
}

func TestGenericListByPriority(t *testing.T) {
	scope, err := NewBeanScopeBuilder().
		Provide(implB{}, As(TypeOf[baseIface]()), WithPriority(20)).
		Provide(implC{}, As(TypeOf[baseIface]()), WithPriority(10)).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	list, err := ListByPriority[baseIface](scope)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C", list[0].id())
}
