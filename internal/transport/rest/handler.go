package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
)

// Handler adapts the Controller to HTTP.
type Handler struct {
	controller *Controller
	logger     *slog.Logger
}

// NewHandler creates a new Handler serving products from repo.
func NewHandler(repo repository.Repository[product.Product], logger *slog.Logger) *Handler {
	l := logger.With("component", "rest")
	return &Handler{
		controller: NewController(repo, l),
		logger:     l,
	}
}

// RegisterRoutes registers the JSON API under /api/products.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Replace)
			r.Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to list products")
	res, err := h.controller.List(r.Context())
	h.write(w, r, res, err, "Failed to fetch products")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	res, err := h.controller.Get(r.Context(), id)
	h.write(w, r, res, err, "Failed to retrieve product")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "Name", p.Name)
	res, err := h.controller.Create(r.Context(), p)
	h.write(w, r, res, err, "Failed to create product")
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	res, err := h.controller.Replace(r.Context(), id, p)
	h.write(w, r, res, err, "Failed to update product")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	res, err := h.controller.Delete(r.Context(), id)
	h.write(w, r, res, err, "Failed to delete product")
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*product.Product, bool) {
	var p product.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return &p, true
}

// write answers with res, or with a 500 carrying failMsg when the controller failed.
func (h *Handler) write(w http.ResponseWriter, r *http.Request, res Result, err error, failMsg string) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), failMsg, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, failMsg)
		return
	}
	if res.Location != "" {
		w.Header().Set("Location", res.Location)
	}
	web.RespondJSON(w, h.logger, res.Status, res.Body)
}
