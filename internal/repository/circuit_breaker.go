package repository

import (
	"context"
	"errors"
	"log/slog"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker guards a Repository with a gobreaker circuit breaker.
// While the breaker is open every call fails fast with gobreaker.ErrOpenState.
type CircuitBreaker[T any] struct {
	next    Repository[T]
	breaker *gobreaker.CircuitBreaker[any]
}

// NewCircuitBreaker wraps next with a breaker configured from cfg.
func NewCircuitBreaker[T any](next Repository[T], cfg config.CircuitBreakerConfig, logger *slog.Logger) *CircuitBreaker[T] {
	st := gobreaker.Settings{
		Name:        "catalog-storage",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures ||
				(total > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent))
		},
		// A missing product is an answer, not a storage failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, perrors.ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &CircuitBreaker[T]{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](st),
	}
}

func (c *CircuitBreaker[T]) GetAll(ctx context.Context) ([]T, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		return c.next.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.([]T), nil
}

func (c *CircuitBreaker[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		return c.next.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*T), nil
}

func (c *CircuitBreaker[T]) Create(ctx context.Context, entity *T) error {
	return c.run(func() error { return c.next.Create(ctx, entity) })
}

func (c *CircuitBreaker[T]) Update(ctx context.Context, entity *T) error {
	return c.run(func() error { return c.next.Update(ctx, entity) })
}

func (c *CircuitBreaker[T]) Delete(ctx context.Context, entity *T) error {
	return c.run(func() error { return c.next.Delete(ctx, entity) })
}

func (c *CircuitBreaker[T]) run(op func() error) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, op()
	})
	return err
}
