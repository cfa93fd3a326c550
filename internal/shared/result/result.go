// Package result holds the tagged outcome returned by screen orchestrators
// and the sentinel errors used to classify failures.
package result

import (
	"context"
	"errors"
)

var (
	// ErrTimeout marks an operation that exceeded its time budget.
	ErrTimeout = errors.New("operation timed out")
	// ErrNotFound marks a requested entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input that could not be accepted.
	ErrValidation = errors.New("validation failed")
)

// Outcome is the branch a caller takes on a Result.
type Outcome int

const (
	Failed Outcome = iota
	Success
	Empty
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Empty:
		return "empty"
	default:
		return "failed"
	}
}

// Kind describes why a Result failed.
type Kind string

const (
	KindNone       Kind = ""
	KindTimeout    Kind = "timeout"
	KindAdapter    Kind = "adapter"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
)

// Result carries a value on success together with the outcome and, for
// failures, the classified kind and cause.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Kind    Kind
	Err     error
}

// OK wraps a successful value.
func OK[T any](value T) Result[T] {
	return Result[T]{Value: value, Outcome: Success}
}

// None reports that nothing was found without it being an error.
func None[T any]() Result[T] {
	return Result[T]{Outcome: Empty}
}

// Fail classifies err and wraps it as a failed result.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result[T]{Outcome: Failed, Kind: Classify(err), Err: err}
}

// From converts a (value, error) pair into a Result.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return OK(value)
}

func (r Result[T]) IsSuccess() bool { return r.Outcome == Success }
func (r Result[T]) IsEmpty() bool { return r.Outcome == Empty }
func (r Result[T]) IsFailed() bool { return r.Outcome == Failed }

// Classify maps an error chain onto a failure kind. Anything not recognised
// is an adapter failure.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindAdapter
	}
}
