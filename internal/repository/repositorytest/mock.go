// Package repositorytest provides a testify based Repository double that records calls.
package repositorytest

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock implements repository.Repository[T] on top of mock.Mock.
type Mock[T any] struct {
	mock.Mock
}

func (m *Mock[T]) GetAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]T)
	return list, args.Error(1)
}

func (m *Mock[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	entity, _ := args.Get(0).(*T)
	return entity, args.Error(1)
}

func (m *Mock[T]) Create(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *Mock[T]) Update(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *Mock[T]) Delete(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}
