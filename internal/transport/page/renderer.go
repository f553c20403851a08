package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/validation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	viewNotFound = "notfound"
	viewError    = "error"
)

var viewTitles = map[string]string{
	ViewIndex:    "Products",
	ViewDetails:  "Details",
	ViewCreate:   "Create product",
	ViewEdit:     "Edit product",
	ViewDelete:   "Delete product",
	viewNotFound: "Not found",
	viewError:    "Error",
}

// viewData is the root object handed to every template.
type viewData struct {
	Title string
	Model any
	State *validation.ModelState
}

// Renderer executes the embedded page templates. Each view is parsed together with the layout.
type Renderer struct {
	views map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	views := make(map[string]*template.Template, len(viewTitles))
	for name := range viewTitles {
		t, err := template.ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
		}
		views[name] = t
	}
	return &Renderer{views: views}, nil
}

// Render writes the named view with status. Nothing is written if the template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, model any, state *validation.ModelState) error {
	t, ok := r.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	if state == nil {
		state = validation.NewModelState()
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", viewData{Title: viewTitles[name], Model: model, State: state}); err != nil {
		return fmt.Errorf("failed to render view %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
