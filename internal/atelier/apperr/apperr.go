// Package apperr defines the typed domain errors of the lifecycle engine.
// Every error carries a stable machine-readable code and a human-readable
// detail; the HTTP layer translates codes to status codes, the core never
// touches transport concerns.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Stable error codes. Deterministic failures recur until input or state
// changes; only STORE_UNAVAILABLE is worth retrying.
const (
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeCompositionExceeded   = "COMPOSITION_EXCEEDED"
	CodeInvalidPercentage     = "INVALID_PERCENTAGE"
	CodeDuplicateAssociation  = "DUPLICATE_ASSOCIATION"
	CodeUnknownReference      = "UNKNOWN_REFERENCE"
	CodeNotFound              = "NOT_FOUND"
	CodeDeletionBlocked       = "DELETION_BLOCKED"
	CodeIncompatibleAttribute = "INCOMPATIBLE_ATTRIBUTE"
	CodeValidation            = "VALIDATION_ERROR"
	CodeStoreUnavailable      = "STORE_UNAVAILABLE"
)

// Error is the single error type returned across the service boundary.
type Error struct {
	Code   string `json:"error"`
	Detail string `json:"detail"`
	cause  error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code, or empty string for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return CodeOf(err) == code
}

func NewInvalidTransition(current, target string, allowed []string) *Error {
	detail := fmt.Sprintf("cannot transition from %s to %s", current, target)
	if len(allowed) == 0 {
		detail += fmt.Sprintf("; %s is terminal", current)
	} else {
		detail += fmt.Sprintf("; valid targets: %s", strings.Join(allowed, ", "))
	}
	return &Error{Code: CodeInvalidTransition, Detail: detail}
}

func NewCompositionExceeded(current, adding decimal.Decimal) *Error {
	return &Error{
		Code: CodeCompositionExceeded,
		Detail: fmt.Sprintf("total material percentage would exceed 100 (current: %s, adding: %s)",
			current.StringFixed(2), adding.StringFixed(2)),
	}
}

func NewInvalidPercentage(p decimal.Decimal) *Error {
	return &Error{
		Code:   CodeInvalidPercentage,
		Detail: fmt.Sprintf("percentage %s is outside (0, 100]", p.String()),
	}
}

func NewDuplicateAssociation(kind, garmentID, refID string) *Error {
	return &Error{
		Code:   CodeDuplicateAssociation,
		Detail: fmt.Sprintf("%s %s is already linked to garment %s", kind, refID, garmentID),
	}
}

func NewUnknownReference(kind, id string) *Error {
	return &Error{
		Code:   CodeUnknownReference,
		Detail: fmt.Sprintf("%s %s does not exist in the catalog", kind, id),
	}
}

func NewNotFound(kind, id string) *Error {
	return &Error{
		Code:   CodeNotFound,
		Detail: fmt.Sprintf("%s %s not found", kind, id),
	}
}

func NewDeletionBlocked(name string) *Error {
	return &Error{
		Code:   CodeDeletionBlocked,
		Detail: fmt.Sprintf("garment %q is in PRODUCTION and cannot be deleted", name),
	}
}

func NewIncompatibleAttribute(name string, conflicts []string) *Error {
	return &Error{
		Code: CodeIncompatibleAttribute,
		Detail: fmt.Sprintf("attribute %q is incompatible with existing attributes: %s",
			name, strings.Join(conflicts, ", ")),
	}
}

func NewValidation(detail string) *Error {
	return &Error{Code: CodeValidation, Detail: detail}
}

// Store wraps a persistence failure so callers can distinguish transient
// infrastructure trouble from deterministic domain rejections.
func Store(err error) *Error {
	return &Error{
		Code:   CodeStoreUnavailable,
		Detail: "persistent store unavailable",
		cause:  err,
	}
}
