package contracts

import "context"

// EventPublisher pushes lifecycle events onto the message broker so
// downstream consumers (notifications, analytics) can react.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}
