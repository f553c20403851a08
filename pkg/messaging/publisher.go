// Package messaging defines the outbound event contract used to announce catalog changes.
package messaging

import (
	"context"
)

// Event is a message addressed to a subject. Payload is encoded lazily, at publish time.
type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublisherFunc adapts a function to a Publisher.
type PublisherFunc func(ctx context.Context, event Event) error

func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// NopPublisher drops every event. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
