package events

import (
	"context"
	"sync"

	"medika-service/internal/app/contracts"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Routing keys for lifecycle events consumers subscribe to.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
	EventPaymentSettled   = "payment.settled"
	EventPaymentFailed    = "payment.failed"
	EventOrderCreated     = "order.created"
	EventOrderPaid        = "order.paid"
	EventOrderCancelled   = "order.cancelled"
)

var (
	publisherInstance contracts.EventPublisher
	oncePublisher     sync.Once
)

type eventPublisher struct {
	ch        *amqp.Channel
	queueName string
	Log       *zap.Logger
}

// NewEventPublisher opens a channel and declares the durable events queue.
func NewEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (contracts.EventPublisher, error) {
	var initErr error
	oncePublisher.Do(func() {
		ch, err := conn.Channel()
		if err != nil {
			initErr = err
			return
		}

		_, err = ch.QueueDeclare(
			queueName,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			initErr = err
			return
		}

		publisherInstance = &eventPublisher{
			ch:        ch,
			queueName: queueName,
			Log:       logger,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return publisherInstance, nil
}

type eventEnvelope struct {
	Event     string      `json:"event"`
	RequestID string      `json:"request_id,omitempty"`
	Payload   interface{} `json:"payload"`
}

func (p *eventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	requestID := utils.GetRequestID(ctx)

	body, err := json.Marshal(eventEnvelope{
		Event:     routingKey,
		RequestID: requestID,
		Payload:   payload,
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key is the queue name on the default exchange
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Type:         routingKey,
			Body:         body,
		},
	)
	if err != nil {
		p.Log.Error("eventPublisher.Publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, routingKey),
			zap.Error(err),
		)
		return exceptions.ErrEventPublish(err)
	}

	p.Log.Debug("eventPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, p.queueName),
		zap.String(constvars.LoggingEventKey, routingKey),
	)
	return nil
}

func (p *eventPublisher) Close() error {
	return p.ch.Close()
}
