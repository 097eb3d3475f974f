package integrity

import (
	"context"
	"fmt"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher is the subset of *amqp.Channel the reporter needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type integrityReporter struct {
	publisher Publisher
	queue     string
	log       *zap.Logger
	mu        sync.Mutex
}

// NewIntegrityReporter logs every integrity event and, when publisher and
// queue are both set, publishes it as a persistent JSON message.
func NewIntegrityReporter(publisher Publisher, queue string, logger *zap.Logger) contracts.IntegrityReporter {
	return &integrityReporter{
		publisher: publisher,
		queue:     queue,
		log:       logger,
	}
}

// NewIntegrityQueuePublisher opens a channel on conn and declares the
// durable integrity queue.
func NewIntegrityQueuePublisher(conn *amqp.Connection, queue string) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return ch, nil
}

// Report never fails the caller. Publish errors are logged.
func (r *integrityReporter) Report(ctx context.Context, event *models.IntegrityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID, _ = ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}

	r.log.Error("integrityReporter.Report data integrity fault",
		zap.String(constvars.LoggingRequestIDKey, event.RequestID),
		zap.String(constvars.LoggingErrorTypeKey, event.Type),
		zap.String(constvars.LoggingReferenceKey, event.Reference),
		zap.String(constvars.LoggingResourceTypeKey, string(event.ResourceType)),
		zap.String(constvars.LoggingResourceIDKey, event.ResourceID),
		zap.String(constvars.LoggingAccountIDKey, event.ActorID),
		zap.String(constvars.LoggingReasonKey, event.Detail),
	)

	if r.publisher == nil || r.queue == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		r.log.Error("integrityReporter.Report error marshalling event",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.Error(exceptions.ErrCannotMarshalJSON(err)),
		)
		return
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("%s:%s", event.Type, event.Reference),
		Timestamp:    event.OccurredAt,
	}

	// amqp channels are not safe for concurrent publishing
	r.mu.Lock()
	err = r.publisher.PublishWithContext(ctx, "", r.queue, false, false, msg)
	r.mu.Unlock()
	if err != nil {
		r.log.Error("integrityReporter.Report error publishing event",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingQueueKey, r.queue),
			zap.Error(exceptions.ErrRabbitMQPublishMessage(err)),
		)
	}
}
