package inject

import (
	"context"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// Scope lifecycle event types emitted to registered observers.
const (
	// EventTypeScopeStarted is emitted after all post-construct callbacks
	// have fired successfully.
	EventTypeScopeStarted = "inject.scope.started"

	// EventTypeScopeClosed is emitted after the pre-destroy actions have
	// run, whether or not any of them failed.
	EventTypeScopeClosed = "inject.scope.closed"

	// EventTypePreDestroyFailed is emitted once per failing pre-destroy
	// action.
	EventTypePreDestroyFailed = "inject.predestroy.failed"
)

const eventSource = "github.com/agentgt/avaje-inject"

// ObserverFunc receives scope lifecycle events in CloudEvents format.
// Observers are invoked synchronously after the lifecycle transition
// completes; a returned error is logged at debug level and otherwise
// ignored.
type ObserverFunc func(ctx context.Context, event cloudevents.Event) error

// NewLifecycleEvent creates a properly formatted CloudEvent for a scope
// lifecycle transition.
func NewLifecycleEvent(eventType string, data any) cloudevents.Event {
	event := cloudevents.NewEvent()
	event.SetID(generateEventID())
	event.SetSource(eventSource)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

// generateEventID returns a UUIDv7 so event ids carry time ordering,
// falling back to v4 if v7 generation fails.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

func (s *beanScope) notify(eventType string, data any) {
	if len(s.observers) == 0 {
		return
	}
	event := NewLifecycleEvent(eventType, data)
	ctx := context.Background()
	for _, observer := range s.observers {
		if err := observer(ctx, event); err != nil {
			s.logger.Debug("Observer rejected lifecycle event", "eventType", eventType, "error", err)
		}
	}
}
