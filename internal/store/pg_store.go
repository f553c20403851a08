package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productsTable = "products"

var (
	psql           = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	productColumns = []string{"id", "name", "stock", "color", "price"}
)

// PgStore implements the product repository on PostgreSQL through pgx.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// GetAll returns every product ordered by ID.
func (p *PgStore) GetAll(ctx context.Context) ([]product.Product, error) {
	query, args, err := psql.Select(productColumns...).From(productsTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[product.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a product by its identifier.
// Returns ErrNotFound if no product exists with the given ID.
func (p *PgStore) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := psql.Select(productColumns...).From(productsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	found, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[product.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return found, nil
}

// Create inserts the product and stores the generated ID in it.
func (p *PgStore) Create(ctx context.Context, entity *product.Product) error {
	query, args, err := psql.Insert(productsTable).
		Columns("name", "stock", "color", "price").
		Values(entity.Name, entity.Stock, entity.Color, entity.Price).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if err = p.db.QueryRow(ctx, query, args...).Scan(&entity.ID); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces the row with the product's ID. Nothing happens if the row does not exist.
func (p *PgStore) Update(ctx context.Context, entity *product.Product) error {
	query, args, err := psql.Update(productsTable).
		SetMap(map[string]any{
			"name":  entity.Name,
			"stock": entity.Stock,
			"color": entity.Color,
			"price": entity.Price,
		}).
		Where(sq.Eq{"id": entity.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err = p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes the row with the product's ID.
func (p *PgStore) Delete(ctx context.Context, entity *product.Product) error {
	query, args, err := psql.Delete(productsTable).Where(sq.Eq{"id": entity.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err = p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
