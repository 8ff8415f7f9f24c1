package shared

import "context"

type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}
