// Package errors defines typed errors with categories so failures can be
// logged by kind while the user only ever sees a fixed generic message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// SubmissionFailure indicates the process call failed.
	SubmissionFailure Kind = "submission_failure"
	// ApprovalFailure indicates the approve call failed.
	ApprovalFailure Kind = "approval_failure"
	// Transport indicates the request never got a response.
	Transport Kind = "transport"
	// Status indicates a non-2xx response.
	Status Kind = "status"
	// Decode indicates a malformed response body.
	Decode Kind = "decode"
	// Config indicates an invalid or unreadable configuration.
	Config Kind = "config"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the outermost Kind in the chain, or "" when err carries none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether any error in the chain has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *E
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
