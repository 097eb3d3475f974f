package integrity

import (
	"context"
	"errors"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"testing"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePublisher struct {
	queues   []string
	messages []amqp.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.queues = append(f.queues, key)
	f.messages = append(f.messages, msg)
	return nil
}

func danglingEvent() *models.IntegrityEvent {
	return &models.IntegrityEvent{
		Type:         constvars.IntegrityEventDanglingReference,
		Reference:    "profile:patient/P404",
		ResourceType: models.ResourceInvoice,
		ResourceID:   "INV2",
		ActorID:      "U9",
	}
}

func TestReport_PublishesPersistentJSON(t *testing.T) {
	publisher := &fakePublisher{}
	reporter := NewIntegrityReporter(publisher, "integrity_events", zap.NewNop())

	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	reporter.Report(ctx, danglingEvent())

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, []string{"integrity_events"}, publisher.queues)

	msg := publisher.messages[0]
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, constvars.MIMEApplicationJSON, msg.ContentType)

	var decoded models.IntegrityEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "profile:patient/P404", decoded.Reference)
	assert.Equal(t, "req-1", decoded.RequestID)
	assert.False(t, decoded.OccurredAt.IsZero())
}

func TestReport_LogsOnlyWithoutQueue(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	publisher := &fakePublisher{}
	reporter := NewIntegrityReporter(publisher, "", zap.New(core))

	reporter.Report(context.Background(), danglingEvent())

	assert.Empty(t, publisher.messages)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "profile:patient/P404", logs.All()[0].ContextMap()[constvars.LoggingReferenceKey])
}

func TestReport_PublishFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	publisher := &fakePublisher{err: errors.New("channel closed")}
	reporter := NewIntegrityReporter(publisher, "integrity_events", zap.New(core))

	assert.NotPanics(t, func() {
		reporter.Report(context.Background(), danglingEvent())
	})
	assert.Equal(t, 2, logs.Len())
}
