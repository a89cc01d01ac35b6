package services

import (
	"context"
	"log/slog"
)

// EventPublisher delivers lifecycle events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// EventRecorder observes publish outcomes.
type EventRecorder interface {
	RecordEvent(routingKey string, err error)
}

// Notifier publishes lifecycle events on behalf of the services. Publish
// failures are logged and never surface to the caller. A nil *Notifier
// publishes nothing.
type Notifier struct {
	publisher EventPublisher
	recorder  EventRecorder
	log       *slog.Logger
}

// NewNotifier creates a Notifier. recorder may be nil.
func NewNotifier(publisher EventPublisher, recorder EventRecorder, log *slog.Logger) *Notifier {
	return &Notifier{publisher: publisher, recorder: recorder, log: log}
}

// Notify publishes payload under routingKey.
func (n *Notifier) Notify(ctx context.Context, routingKey string, payload any) {
	if n == nil || n.publisher == nil {
		return
	}
	err := n.publisher.Publish(ctx, routingKey, payload)
	if n.recorder != nil {
		n.recorder.RecordEvent(routingKey, err)
	}
	if err != nil {
		n.log.WarnContext(ctx, "failed to publish event", "routing_key", routingKey, "error", err)
	}
}

type deletedEvent struct {
	ID any `json:"id"`
}
