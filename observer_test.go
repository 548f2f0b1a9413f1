package inject

import (
	"context"
	"errors"
	"sync"
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []cloudevents.Event
}

func (r *eventRecorder) observe(ctx context.Context, event cloudevents.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

func TestObserverReceivesLifecycleEvents(t *testing.T) {
	recorder := &eventRecorder{}
	scope, err := NewBeanScopeBuilder(WithObserver(recorder.observe)).
		Provide(&pump{}).
		Build()
	require.NoError(t, err)

	scope.Close()
	assert.Equal(t, []string{EventTypeScopeStarted, EventTypeScopeClosed}, recorder.types())
}

func TestObserverReceivesPreDestroyFailure(t *testing.T) {
	recorder := &eventRecorder{}
	scope, err := NewBeanScopeBuilder(WithObserver(recorder.observe), WithLogger(&testLogger{})).
		PreDestroy(func() error { return errors.New("flush failed") }).
		Build()
	require.NoError(t, err)

	scope.Close()
	assert.Equal(t, []string{
		EventTypeScopeStarted,
		EventTypePreDestroyFailed,
		EventTypeScopeClosed,
	}, recorder.types())
}

func TestLifecycleEventShape(t *testing.T) {
	event := NewLifecycleEvent(EventTypeScopeStarted, map[string]any{"beans": 2})
	require.NoError(t, event.Validate())
	assert.Equal(t, EventTypeScopeStarted, event.Type())
	assert.Equal(t, eventSource, event.Source())
	assert.NotEmpty(t, event.ID())
	assert.False(t, event.Time().IsZero())
}

func TestObserverErrorDoesNotAbort(t *testing.T) {
	recorder := &eventRecorder{}
	failing := func(ctx context.Context, event cloudevents.Event) error {
		return errors.New("observer down")
	}
	scope, err := NewBeanScopeBuilder(WithObserver(failing, recorder.observe)).
		Build()
	require.NoError(t, err)
	defer scope.Close()

	// the failing observer does not stop delivery to the next one
	assert.Equal(t, []string{EventTypeScopeStarted}, recorder.types())
}
