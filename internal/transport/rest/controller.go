// Package rest exposes the product catalog as a JSON API.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository"
	"github.com/abgdnv/productcatalog/pkg/web"
)

// Result is the outcome of an API operation: a status code, an optional JSON body
// and, for created resources, the Location of the new entity.
type Result struct {
	Status   int
	Body     any
	Location string
}

// Controller implements the API operations on top of a product repository.
// A returned error is an unexpected storage failure; every expected outcome is a Result.
type Controller struct {
	repo   repository.Repository[product.Product]
	logger *slog.Logger
}

func NewController(repo repository.Repository[product.Product], logger *slog.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

// List returns every product.
func (c *Controller) List(ctx context.Context) (Result, error) {
	list, err := c.repo.GetAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list products: %w", err)
	}
	if list == nil {
		list = []product.Product{}
	}
	c.logger.DebugContext(ctx, "Successfully retrieved product list", "count", len(list))
	return Result{Status: http.StatusOK, Body: list}, nil
}

// Get returns the product with the given id, or 404.
func (c *Controller) Get(ctx context.Context, id int64) (Result, error) {
	found, err := c.find(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if found == nil {
		return notFound(id), nil
	}
	return Result{Status: http.StatusOK, Body: found}, nil
}

// Create stores the body as a new product. The body is not validated.
func (c *Controller) Create(ctx context.Context, p *product.Product) (Result, error) {
	if err := c.repo.Create(ctx, p); err != nil {
		return Result{}, fmt.Errorf("failed to create product: %w", err)
	}
	c.logger.InfoContext(ctx, "Product created successfully", "ID", p.ID, "Name", p.Name)
	return Result{
		Status:   http.StatusCreated,
		Body:     p,
		Location: fmt.Sprintf("/api/products/%d", p.ID),
	}, nil
}

// Replace overwrites the product at id with the body. The body id must match the route id.
func (c *Controller) Replace(ctx context.Context, id int64, p *product.Product) (Result, error) {
	if p.ID != id {
		c.logger.WarnContext(ctx, "ID mismatch", "routeID", id, "bodyID", p.ID)
		return Result{
			Status: http.StatusBadRequest,
			Body:   web.ErrorResponse{Error: fmt.Sprintf("ID in path (%d) does not match ID in body (%d)", id, p.ID)},
		}, nil
	}
	if err := c.repo.Update(ctx, p); err != nil {
		return Result{}, fmt.Errorf("failed to update product: %w", err)
	}
	c.logger.InfoContext(ctx, "Product updated successfully", "ID", id)
	return Result{Status: http.StatusNoContent}, nil
}

// Delete removes the product at id, or answers 404 without deleting anything.
func (c *Controller) Delete(ctx context.Context, id int64) (Result, error) {
	found, err := c.find(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if found == nil {
		return notFound(id), nil
	}
	if err = c.repo.Delete(ctx, found); err != nil {
		return Result{}, fmt.Errorf("failed to delete product: %w", err)
	}
	c.logger.InfoContext(ctx, "Product deleted successfully", "ID", id)
	return Result{Status: http.StatusNoContent}, nil
}

// find returns nil without an error when the product does not exist.
func (c *Controller) find(ctx context.Context, id int64) (*product.Product, error) {
	found, err := c.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrNotFound) {
			c.logger.WarnContext(ctx, "Product not found", "ID", id)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return found, nil
}

func notFound(id int64) Result {
	return Result{
		Status: http.StatusNotFound,
		Body:   web.ErrorResponse{Error: fmt.Sprintf("Product with ID %d not found", id)},
	}
}
