// Package search talks to the remote property search endpoint and turns its
// loosely shaped responses into an Outcome.
package search

import (
	"fmt"

	"propertyfinder/internal/types"
)

// GenericMessage is the only failure text shown to users. The diagnostic
// message of an Error goes to the log.
const GenericMessage = "Unable to search properties. Please try again."

// Kind classifies a failed search.
type Kind int

const (
	// TransportFailure covers network errors, non-2xx statuses and bodies
	// that are not valid JSON.
	TransportFailure Kind = iota + 1
	// ApplicationFailure is a well-formed body that carries an "error" field.
	ApplicationFailure
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case TransportFailure:
		return "transport_failure"
	case ApplicationFailure:
		return "application_failure"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error describes a failed search. Message is diagnostic detail for logs.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the text that may be displayed for this failure.
func (e *Error) UserMessage() string { return GenericMessage }

// Outcome is the result of one search: either a record sequence (possibly
// empty) or a failure.
type Outcome struct {
	Records []types.Record
	Err     *Error
}

// Success wraps a record sequence.
func Success(records []types.Record) Outcome {
	if records == nil {
		records = []types.Record{}
	}
	return Outcome{Records: records}
}

// Failure wraps a search error.
func Failure(err *Error) Outcome { return Outcome{Err: err} }

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool { return o.Err != nil }
