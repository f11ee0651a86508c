// Package models defines the portfolio API's records, their create/update
// request shapes and the response envelope.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/portfolio/internal/common"
)

// ErrInvalidField is returned by request validation before anything is sent.
var ErrInvalidField = common.ErrInvalidField

// Record is any server-owned entity with an immutable identifier.
type Record interface {
	GetID() string
}

// Envelope is the uniform response wrapper: {success, message?, data}.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ErrorBody is the subset of an error response the client reads.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidField, field, fmt.Sprintf(format, args...))
}

func required(field, value string) error {
	if value == "" {
		return invalid(field, "is required")
	}
	return nil
}

func oneOf[S ~string](field string, value S, allowed ...S) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return invalid(field, "%q is not one of %v", value, allowed)
}

// Ptr returns a pointer to v; handy for building partial updates.
func Ptr[T any](v T) *T {
	return &v
}
