package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"storefront/internal/services"
	"storefront/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type recordedEvent struct {
	key string
	err error
}

type fakeRecorder struct {
	events []recordedEvent
}

func (r *fakeRecorder) RecordEvent(routingKey string, err error) {
	r.events = append(r.events, recordedEvent{key: routingKey, err: err})
}

func TestNotifier_LogsAndRecordsFailures(t *testing.T) {
	var buf bytes.Buffer
	publisher := new(MockPublisher)
	recorder := &fakeRecorder{}
	notifier := services.NewNotifier(publisher, recorder, logger.NewWithWriter(&buf, "production", "info"))
	ctx := context.Background()

	publisher.On("Publish", ctx, "product.created", "payload").Return(nil).Once()
	publisher.On("Publish", ctx, "product.deleted", "payload").Return(errors.New("broker down")).Once()

	notifier.Notify(ctx, "product.created", "payload")
	notifier.Notify(ctx, "product.deleted", "payload")

	assert.Len(t, recorder.events, 2)
	assert.NoError(t, recorder.events[0].err)
	assert.EqualError(t, recorder.events[1].err, "broker down")
	assert.Contains(t, buf.String(), "failed to publish event")
	assert.Contains(t, buf.String(), "product.deleted")
	publisher.AssertExpectations(t)
}

func TestNotifier_NilIsNoop(t *testing.T) {
	var notifier *services.Notifier
	assert.NotPanics(t, func() {
		notifier.Notify(context.Background(), "customer.created", nil)
	})
}
