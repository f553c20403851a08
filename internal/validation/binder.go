package validation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/shopspring/decimal"
)

// Binder decodes form posts into structs and validates the result.
type Binder struct {
	decoder   *form.Decoder
	validator *Validator
}

func NewBinder(v *Validator) *Binder {
	decoder := form.NewDecoder()
	decoder.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		raw := strings.TrimSpace(vals[0])
		if raw == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(raw)
	}, decimal.Decimal{})
	return &Binder{decoder: decoder, validator: v}
}

// Bind fills dst from the request's form values and returns the resulting ModelState.
// Values that cannot be decoded and failed validation rules both become field errors.
// A returned error means the request itself could not be read.
func (b *Binder) Bind(r *http.Request, dst any) (*ModelState, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	state := NewModelState()
	if err := b.decoder.Decode(dst, r.PostForm); err != nil {
		var decodeErrors form.DecodeErrors
		if !errors.As(err, &decodeErrors) {
			return nil, fmt.Errorf("failed to decode form: %w", err)
		}
		for field := range decodeErrors {
			state.AddError(field, "invalid value")
		}
	}
	if err := b.validator.Validate(dst, state); err != nil {
		return nil, fmt.Errorf("failed to validate form: %w", err)
	}
	return state, nil
}
