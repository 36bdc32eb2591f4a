// Package events lists the facts Ecoleta modules publish: a point was
// registered, a queued confirmation mail is due. Bus plumbing lives in
// platform/events and is aliased here so modules import a single package.
package events

import (
	platformevents "ecoleta/platform/events"
	"ecoleta/platform/logger"
)

type (
	Event       = platformevents.Event
	Bus         = platformevents.Bus
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	BaseEvent   = platformevents.BaseEvent
	InMemoryBus = platformevents.InMemoryBus
)

var NewBaseEvent = platformevents.NewBaseEvent

// NewInMemoryBus returns the process-local bus used by cmd/api and cmd/worker.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// =============================================================================
// Points Domain Events
// =============================================================================

// PointCreated is published after a collection point and its items are committed.
type PointCreated struct {
	BaseEvent
	PointID    int64    `json:"pointId"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	City       string   `json:"city"`
	UF         string   `json:"uf"`
	ItemIDs    []int64  `json:"itemIds"`
	ItemTitles []string `json:"itemTitles"`
}

func (e PointCreated) EventName() string { return "points.point.created" }

// =============================================================================
// Notification Events
// =============================================================================

// PointConfirmationDue is published by the worker when a queued confirmation
// mail should be delivered.
type PointConfirmationDue struct {
	BaseEvent
	PointID int64    `json:"pointId"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	City    string   `json:"city"`
	UF      string   `json:"uf"`
	Items   []string `json:"items"`
}

func (e PointConfirmationDue) EventName() string { return "notification.point_confirmation.due" }
