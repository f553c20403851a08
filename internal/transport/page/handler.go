package page

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository"
	"github.com/abgdnv/productcatalog/internal/validation"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
)

// actionPaths maps redirect action names to URLs.
var actionPaths = map[string]string{
	ActionIndex: "/products",
}

// Handler adapts the page Controller to HTTP: it binds ids and forms, then renders or redirects.
type Handler struct {
	controller *Controller
	binder     *validation.Binder
	renderer   *Renderer
	logger     *slog.Logger
}

func NewHandler(repo repository.Repository[product.Product], binder *validation.Binder, renderer *Renderer, logger *slog.Logger) *Handler {
	l := logger.With("component", "page")
	return &Handler{
		controller: NewController(repo, l),
		binder:     binder,
		renderer:   renderer,
		logger:     l,
	}
}

// RegisterRoutes registers the HTML pages under /products.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.Index)

		r.Get("/details", h.Details)
		r.Get("/details/{id}", h.Details)

		r.Get("/create", h.ShowCreateForm)
		r.Post("/create", h.SubmitCreate)

		r.Get("/edit", h.ShowEditForm)
		r.Get("/edit/{id}", h.ShowEditForm)
		r.Post("/edit/{id}", h.SubmitEdit)

		r.Get("/delete", h.ShowDeleteConfirmation)
		r.Get("/delete/{id}", h.ShowDeleteConfirmation)
		r.Post("/delete/{id}", h.ConfirmDelete)
	})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.Index(r.Context())
	h.respond(w, r, res, err)
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.Details(r.Context(), web.OptionalID(r))
	h.respond(w, r, res, err)
}

func (h *Handler) ShowCreateForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.ShowCreateForm(r.Context())
	h.respond(w, r, res, err)
}

func (h *Handler) SubmitCreate(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	state, ok := h.bind(w, r, &p)
	if !ok {
		return
	}
	res, err := h.controller.SubmitCreate(r.Context(), &p, state)
	h.respond(w, r, res, err)
}

func (h *Handler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.ShowEditForm(r.Context(), web.OptionalID(r))
	h.respond(w, r, res, err)
}

func (h *Handler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	id := web.OptionalID(r)
	if id == nil {
		h.respond(w, r, notFound(), nil)
		return
	}
	var p product.Product
	state, ok := h.bind(w, r, &p)
	if !ok {
		return
	}
	res, err := h.controller.SubmitEdit(r.Context(), *id, &p, state)
	h.respond(w, r, res, err)
}

func (h *Handler) ShowDeleteConfirmation(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.ShowDeleteConfirmation(r.Context(), web.OptionalID(r))
	h.respond(w, r, res, err)
}

func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := web.OptionalID(r)
	if id == nil {
		h.respond(w, r, redirectToIndex(), nil)
		return
	}
	res, err := h.controller.ConfirmDelete(r.Context(), *id)
	h.respond(w, r, res, err)
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request, p *product.Product) (*validation.ModelState, bool) {
	state, err := h.binder.Bind(r, p)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error binding form", "error", err)
		h.render(w, r, http.StatusBadRequest, viewError, "The submitted form could not be read.", nil)
		return nil, false
	}
	return state, true
}

// respond turns a controller outcome into an HTTP answer. Redirects use 303 after a POST and 302 otherwise.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, res Result, err error) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Page request failed", "path", r.URL.Path, "error", err)
		h.render(w, r, http.StatusInternalServerError, viewError, "Something went wrong. Please try again later.", nil)
		return
	}
	switch res.Kind {
	case KindRedirect:
		status := http.StatusFound
		if r.Method == http.MethodPost {
			status = http.StatusSeeOther
		}
		target, ok := actionPaths[res.Action]
		if !ok {
			h.logger.ErrorContext(r.Context(), "Unknown redirect action", "action", res.Action)
			target = actionPaths[ActionIndex]
		}
		http.Redirect(w, r, target, status)
	case KindNotFound:
		h.render(w, r, http.StatusNotFound, viewNotFound, nil, nil)
	default:
		h.render(w, r, http.StatusOK, res.View, res.Model, res.State)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, model any, state *validation.ModelState) {
	if err := h.renderer.Render(w, status, name, model, state); err != nil {
		h.logger.ErrorContext(r.Context(), "Error rendering view", "view", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
