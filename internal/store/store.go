// Package store provides the storage backends behind repository.Repository[product.Product].
package store

import (
	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository"
)

var (
	_ repository.Repository[product.Product] = (*PgStore)(nil)
	_ repository.Repository[product.Product] = (*GormStore[product.Product])(nil)
	_ repository.Repository[product.Product] = (*InMemoryStore)(nil)
)
