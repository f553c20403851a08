package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"gorm.io/gorm"
)

// GormStore is a generic repository over gorm. T must map to a table with an "id" primary key.
type GormStore[T any] struct {
	db *gorm.DB
}

func NewGormStore[T any](db *gorm.DB) *GormStore[T] {
	return &GormStore[T]{db: db}
}

func (s *GormStore[T]) GetAll(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find all: %w", err)
	}
	return items, nil
}

func (s *GormStore[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find by ID: %w", err)
	}
	return &item, nil
}

// Create inserts entity with an identity taken from the table sequence. A primary key already set on
// entity is discarded before the insert.
func (s *GormStore[T]) Create(ctx context.Context, entity *T) error {
	if err := s.resetPrimaryKey(ctx, entity); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create: %w", err)
	}
	return nil
}

func (s *GormStore[T]) resetPrimaryKey(ctx context.Context, entity *T) error {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(entity); err != nil {
		return fmt.Errorf("failed to parse model: %w", err)
	}
	rv := reflect.ValueOf(entity).Elem()
	for _, field := range stmt.Schema.PrimaryFields {
		field.ReflectValueOf(ctx, rv).SetZero()
	}
	return nil
}

// Update writes every column of entity. Unlike Save it never inserts a missing row.
func (s *GormStore[T]) Update(ctx context.Context, entity *T) error {
	err := s.db.WithContext(ctx).Model(entity).Select("*").Updates(entity).Error
	if err != nil && !errors.Is(err, gorm.ErrMissingWhereClause) {
		return fmt.Errorf("failed to update: %w", err)
	}
	return nil
}

func (s *GormStore[T]) Delete(ctx context.Context, entity *T) error {
	err := s.db.WithContext(ctx).Delete(entity).Error
	if err != nil && !errors.Is(err, gorm.ErrMissingWhereClause) {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}
