// Package errors renders failures as RFC 7807 Problem Details.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// ProblemDetail is an RFC 7807 Problem Details body.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with detail set.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with one more extension member.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type URIs.
const (
	TypeValidation = "/problems/validation-error"
	TypeNotFound   = "/problems/not-found"
	TypeTimeout    = "/problems/timeout"
	TypeUpstream   = "/problems/upstream-failure"
	TypeBadRequest = "/problems/bad-request"
	TypeInternal   = "/problems/internal-error"
)

var (
	ErrValidation = ProblemDetail{Type: TypeValidation, Title: "Validation Error", Status: http.StatusUnprocessableEntity}
	ErrNotFound   = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	ErrTimeout    = ProblemDetail{Type: TypeTimeout, Title: "Operation Timed Out", Status: http.StatusGatewayTimeout}
	ErrUpstream   = ProblemDetail{Type: TypeUpstream, Title: "Backend Failure", Status: http.StatusBadGateway}
	ErrBadRequest = ProblemDetail{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest}
	ErrInternal   = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
)

// FromKind picks the problem template for a failure kind.
func FromKind(kind result.Kind) ProblemDetail {
	switch kind {
	case result.KindValidation:
		return ErrValidation
	case result.KindNotFound:
		return ErrNotFound
	case result.KindTimeout:
		return ErrTimeout
	case result.KindAdapter:
		return ErrUpstream
	default:
		return ErrInternal
	}
}

// FromError converts err into a problem. A ProblemDetail anywhere in the
// chain is used as is.
func FromError(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	if err == nil {
		return ErrInternal
	}
	return FromKind(result.Classify(err)).
		WithDetail(err.Error()).
		WithExtension("kind", string(result.Classify(err)))
}

// NewNotFoundProblem describes a missing resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}

// NewValidationProblem lists field level errors.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}
