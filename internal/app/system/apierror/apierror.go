// internal/app/system/apierror/apierror.go

// Package apierror defines the typed error taxonomy returned at the service
// boundary and renders it as the JSON envelope the API speaks:
//
//	{ "ok": false, "error": "..." }
//
// Every handler funnels failures through Write, which maps known kinds to
// their HTTP status. Anything that is not an *Error is treated as a storage
// or infrastructure fault: it is logged with full detail and surfaced to the
// caller as a generic 500 so raw driver messages never leak.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Kind identifies one branch of the error taxonomy.
type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindRoleMismatch       Kind = "role_mismatch"
	KindOwnershipViolation Kind = "ownership_violation"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindValidation         Kind = "validation"
	KindConflict           Kind = "conflict"
	KindStorage            Kind = "storage"
)

// Error is a typed API error with a fixed HTTP status mapping.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindRoleMismatch, KindOwnershipViolation, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func RoleMismatch(msg string) *Error {
	return &Error{Kind: KindRoleMismatch, Message: msg}
}

func OwnershipViolation(msg string) *Error {
	return &Error{Kind: KindOwnershipViolation, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

type errEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Write renders err to w. Typed errors keep their message and status;
// everything else becomes a generic 500 and is logged with the request
// detail left to the caller's fields.
func Write(w http.ResponseWriter, logger *zap.Logger, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		if logger != nil {
			logger.Error("internal error", zap.Error(err))
		}
		ae = &Error{Kind: KindStorage, Message: "internal error"}
	}
	WriteJSON(w, ae.Status(), errEnvelope{OK: false, Error: ae.Message})
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
