package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/productcatalog/pkg/messaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventFactory builds the event announcing each kind of successful write.
type EventFactory[T any] struct {
	Created func(*T) messaging.Event
	Updated func(*T) messaging.Event
	Deleted func(*T) messaging.Event
}

// Publishing announces successful writes through a messaging.Publisher.
// A failed publish is logged and never fails the write.
type Publishing[T any] struct {
	Repository[T]
	publisher messaging.Publisher
	events    EventFactory[T]
	logger    *slog.Logger
	published metric.Int64Counter
}

// NewPublishing counts publish attempts in the events_published instrument, labelled by subject and outcome.
func NewPublishing[T any](next Repository[T], publisher messaging.Publisher, events EventFactory[T], logger *slog.Logger) *Publishing[T] {
	meter := otel.Meter("catalog-repository")
	published, err := meter.Int64Counter("events_published", metric.WithDescription("Total number of published change events"))
	if err != nil {
		panic(fmt.Sprintf("failed to create events_published counter: %v", err))
	}
	return &Publishing[T]{
		Repository: next,
		publisher:  publisher,
		events:     events,
		logger:     logger.With("component", "publisher"),
		published:  published,
	}
}

func (p *Publishing[T]) Create(ctx context.Context, entity *T) error {
	if err := p.Repository.Create(ctx, entity); err != nil {
		return err
	}
	p.publish(ctx, p.events.Created, entity)
	return nil
}

func (p *Publishing[T]) Update(ctx context.Context, entity *T) error {
	if err := p.Repository.Update(ctx, entity); err != nil {
		return err
	}
	p.publish(ctx, p.events.Updated, entity)
	return nil
}

func (p *Publishing[T]) Delete(ctx context.Context, entity *T) error {
	if err := p.Repository.Delete(ctx, entity); err != nil {
		return err
	}
	p.publish(ctx, p.events.Deleted, entity)
	return nil
}

func (p *Publishing[T]) publish(ctx context.Context, build func(*T) messaging.Event, entity *T) {
	if build == nil {
		return
	}
	event := build(entity)
	subject := attribute.String("subject", event.Subject())
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.published.Add(ctx, 1, metric.WithAttributes(subject, attribute.String("outcome", "error")))
		p.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
		return
	}
	p.published.Add(ctx, 1, metric.WithAttributes(subject, attribute.String("outcome", "ok")))
	p.logger.DebugContext(ctx, "Event published", "subject", event.Subject())
}
