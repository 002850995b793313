package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/botofarm/internal/client/models"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrDuplicateLogin = errors.New("login already exists")
	ErrValidation     = errors.New("validation failed")
)

// ValidationError carries the field errors of a 422 response.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StatusError is returned for unexpected HTTP statuses.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Detail)
}
