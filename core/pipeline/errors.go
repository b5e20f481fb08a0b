package pipeline

import "errors"

// Kind classifies a conversion failure for user-facing reporting.
type Kind string

const (
	KindNone           Kind = ""
	KindMalformedInput Kind = "MalformedInput"
	KindEmptyInput     Kind = "EmptyInput"
)

var (
	// ErrMalformedInput means the input text is not valid JSON.
	ErrMalformedInput = errors.New("invalid JSON format, check the input and retry")
	// ErrEmptyInput means the input parsed but held no question items.
	ErrEmptyInput = errors.New("no question items found in input")
)

// KindOf returns the Kind of a conversion error, or KindNone.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	default:
		return KindNone
	}
}
