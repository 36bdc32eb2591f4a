// Package events is the in-process event bus. Modules publish facts such as
// "point created" here and never call the notification side directly.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every published fact.
type Event interface {
	// EventName is the subscription key, e.g. "points.point.created".
	EventName() string
	OccurredAt() time.Time
	EventID() string
}

// BaseEvent carries the id and timestamp shared by all events. Embed it and
// build it with NewBaseEvent.
type BaseEvent struct {
	ID        string    `json:"eventId"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) EventID() string       { return e.ID }

// NewBaseEvent stamps a fresh id and the current UTC time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.NewString(), Timestamp: time.Now().UTC()}
}

type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus delivers events to the handlers subscribed under their EventName.
// Publish is fire-and-forget (the HTTP request does not wait for mail);
// PublishSync is used by the worker so a failed handler fails the task.
type Bus interface {
	Publish(ctx context.Context, event Event)
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}
