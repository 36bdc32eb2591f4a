// Package notification provides event handlers for sending notifications
// in response to domain events.
// This module subscribes to events and inverts the dependency: domain modules
// no longer need to know about email providers or templates.
package notification

import (
	"context"
	"fmt"
	"strings"

	"ecoleta/internal/email"
	"ecoleta/internal/events"
	"ecoleta/internal/scheduler"
	"ecoleta/platform/config"
	"ecoleta/platform/logger"
	"ecoleta/platform/metrics"
)

const (
	resultSent     = "sent"
	resultFailed   = "failed"
	resultQueued   = "queued"
	pointsPathBase = "/api/v1/points/"
)

// ConfirmationQueue defers confirmation mails to the worker process.
type ConfirmationQueue interface {
	EnqueuePointConfirmation(ctx context.Context, payload scheduler.PointConfirmationPayload) error
}

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	queue  ConfirmationQueue
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// SetConfirmationQueue makes PointCreated enqueue instead of sending inline.
func (m *Module) SetConfirmationQueue(queue ConfirmationQueue) { m.queue = queue }

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.PointCreated{}.EventName(), m)
	bus.Subscribe(events.PointConfirmationDue{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.PointCreated:
		return m.handlePointCreated(ctx, e)
	case events.PointConfirmationDue:
		return m.handlePointConfirmationDue(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handlePointCreated(ctx context.Context, e events.PointCreated) error {
	payload := scheduler.PointConfirmationPayload{
		PointID: e.PointID,
		Email:   e.Email,
		Name:    e.Name,
		City:    e.City,
		UF:      e.UF,
		Items:   e.ItemTitles,
	}

	if m.queue != nil {
		err := m.queue.EnqueuePointConfirmation(ctx, payload)
		if err == nil {
			metrics.ConfirmationEmails.WithLabelValues(resultQueued).Inc()
			return nil
		}
		m.log.Warn("confirmation enqueue failed, sending inline", "pointId", e.PointID, "error", err)
	}

	return m.sendConfirmation(ctx, payload)
}

func (m *Module) handlePointConfirmationDue(ctx context.Context, e events.PointConfirmationDue) error {
	return m.sendConfirmation(ctx, scheduler.PointConfirmationPayload{
		PointID: e.PointID,
		Email:   e.Email,
		Name:    e.Name,
		City:    e.City,
		UF:      e.UF,
		Items:   e.Items,
	})
}

func (m *Module) sendConfirmation(ctx context.Context, p scheduler.PointConfirmationPayload) error {
	err := m.sender.SendPointConfirmationEmail(ctx, p.Email, email.PointConfirmation{
		PointID:  p.PointID,
		Name:     p.Name,
		City:     p.City,
		UF:       p.UF,
		Items:    p.Items,
		PointURL: m.pointURL(p.PointID),
	})
	if err != nil {
		metrics.ConfirmationEmails.WithLabelValues(resultFailed).Inc()
		m.log.WithContext(ctx).Error("failed to send point confirmation", "pointId", p.PointID, "error", err)
		return fmt.Errorf("send point confirmation %d: %w", p.PointID, err)
	}

	metrics.ConfirmationEmails.WithLabelValues(resultSent).Inc()
	m.log.WithContext(ctx).Info("point confirmation sent", "pointId", p.PointID)
	return nil
}

func (m *Module) pointURL(pointID int64) string {
	if m.cfg == nil {
		return ""
	}
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s%s%d", base, pointsPathBase, pointID)
}
