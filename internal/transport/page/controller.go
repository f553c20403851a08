// Package page serves the product catalog as server-rendered HTML pages.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository"
	"github.com/abgdnv/productcatalog/internal/validation"
)

// Controller implements the page operations. Every GET/POST pair is two operations.
// A returned error is an unexpected storage failure.
type Controller struct {
	repo   repository.Repository[product.Product]
	logger *slog.Logger
}

func NewController(repo repository.Repository[product.Product], logger *slog.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

// Index shows every product.
func (c *Controller) Index(ctx context.Context) (Result, error) {
	list, err := c.repo.GetAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list products: %w", err)
	}
	if list == nil {
		list = []product.Product{}
	}
	return view(ViewIndex, list, nil), nil
}

// Details shows one product. Without an id it goes back to the index.
func (c *Controller) Details(ctx context.Context, id *int64) (Result, error) {
	if id == nil {
		return redirectToIndex(), nil
	}
	return c.showExisting(ctx, *id, ViewDetails)
}

// ShowCreateForm shows an empty product form.
func (c *Controller) ShowCreateForm(_ context.Context) (Result, error) {
	return view(ViewCreate, &product.Product{}, nil), nil
}

// SubmitCreate stores p when state is valid; otherwise the form is shown again with p.
func (c *Controller) SubmitCreate(ctx context.Context, p *product.Product, state *validation.ModelState) (Result, error) {
	if !state.IsValid() {
		c.logger.DebugContext(ctx, "Create form rejected", "errors", state.Errors())
		return view(ViewCreate, p, state), nil
	}
	if err := c.repo.Create(ctx, p); err != nil {
		return Result{}, fmt.Errorf("failed to create product: %w", err)
	}
	c.logger.InfoContext(ctx, "Product created successfully", "ID", p.ID, "Name", p.Name)
	return redirectToIndex(), nil
}

// ShowEditForm shows the form for an existing product. Without an id it goes back to the index.
func (c *Controller) ShowEditForm(ctx context.Context, id *int64) (Result, error) {
	if id == nil {
		return redirectToIndex(), nil
	}
	return c.showExisting(ctx, *id, ViewEdit)
}

// SubmitEdit replaces the product at id with p. A posted id that differs from the route is not found.
func (c *Controller) SubmitEdit(ctx context.Context, id int64, p *product.Product, state *validation.ModelState) (Result, error) {
	if id != p.ID {
		c.logger.WarnContext(ctx, "ID mismatch", "routeID", id, "bodyID", p.ID)
		return notFound(), nil
	}
	if !state.IsValid() {
		c.logger.DebugContext(ctx, "Edit form rejected", "ID", id, "errors", state.Errors())
		return view(ViewEdit, p, state), nil
	}
	if err := c.repo.Update(ctx, p); err != nil {
		return Result{}, fmt.Errorf("failed to update product: %w", err)
	}
	c.logger.InfoContext(ctx, "Product updated successfully", "ID", id)
	return redirectToIndex(), nil
}

// ShowDeleteConfirmation asks to confirm the deletion of an existing product.
func (c *Controller) ShowDeleteConfirmation(ctx context.Context, id *int64) (Result, error) {
	if id == nil {
		return notFound(), nil
	}
	return c.showExisting(ctx, *id, ViewDelete)
}

// ConfirmDelete removes the product at id if it exists and always goes back to the index.
func (c *Controller) ConfirmDelete(ctx context.Context, id int64) (Result, error) {
	found, err := c.find(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if found != nil {
		if err = c.repo.Delete(ctx, found); err != nil {
			return Result{}, fmt.Errorf("failed to delete product: %w", err)
		}
		c.logger.InfoContext(ctx, "Product deleted successfully", "ID", id)
	}
	return redirectToIndex(), nil
}

func (c *Controller) showExisting(ctx context.Context, id int64, viewName string) (Result, error) {
	found, err := c.find(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if found == nil {
		return notFound(), nil
	}
	return view(viewName, found, nil), nil
}

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
