package page

import (
	"github.com/abgdnv/productcatalog/internal/validation"
)

// Kind tells the handler how to answer a Result.
type Kind int

const (
	KindView Kind = iota
	KindRedirect
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindView:
		return "view"
	case KindRedirect:
		return "redirect"
	case KindNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// ActionIndex is the only redirect target used by the product pages.
const ActionIndex = "Index"

// View names.
const (
	ViewIndex   = "index"
	ViewDetails = "details"
	ViewCreate  = "create"
	ViewEdit    = "edit"
	ViewDelete  = "delete"
)

// Result is what a page operation decided: render View with Model and State,
// redirect to Action, or answer not found.
type Result struct {
	Kind   Kind
	View   string
	Model  any
	State  *validation.ModelState
	Action string
}

func view(name string, model any, state *validation.ModelState) Result {
	if state == nil {
		state = validation.NewModelState()
	}
	return Result{Kind: KindView, View: name, Model: model, State: state}
}

func redirectToIndex() Result {
	return Result{Kind: KindRedirect, Action: ActionIndex}
}

func notFound() Result {
	return Result{Kind: KindNotFound}
}
