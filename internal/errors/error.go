// Package errors provides sentinel errors shared by the catalog layers.
package errors

import "errors"

// ErrNotFound reports that no product exists with the requested identifier.
var ErrNotFound = errors.New("product not found")
