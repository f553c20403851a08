package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/internal/product"
)

// InMemoryStore keeps products in a map guarded by a RWMutex. IDs start at 1.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]product.Product
	nextID   int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]product.Product),
		nextID:   1,
	}
}

func (s *InMemoryStore) GetAll(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b product.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id int64) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrNotFound
	}
	return &p, nil
}

// Create assigns the next id, replacing any id already set on entity.
func (s *InMemoryStore) Create(_ context.Context, entity *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity.ID = s.nextID
	s.nextID++
	s.products[entity.ID] = *entity
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, entity *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[entity.ID]; ok {
		s.products[entity.ID] = *entity
	}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, entity *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, entity.ID)
	return nil
}
