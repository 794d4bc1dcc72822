package lookup

import (
	"errors"
)

// Failure kinds. They all end up as response text, but are kept apart so
// logs and callers can tell bad input from a broken dependency.
var (
	ErrMissingIdentifier = errors.New("missing user identifier")
	ErrMalformedEvent    = errors.New("malformed event")
	ErrStore             = errors.New("record store failure")
	ErrInvalidRecord     = errors.New("invalid transaction record")
	ErrInternal          = errors.New("internal error")
)

const (
	missingIdentifierText = "Error: Please provide your name to fetch transactions."
	failurePrefix         = "Error fetching transactions: "
)

// Error tags an underlying error with one of the kinds above. Its message is
// the underlying message only.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func wrap(kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// Body renders a lookup failure as the text shown to the user.
func Body(err error) string {
	if errors.Is(err, ErrMissingIdentifier) {
		return missingIdentifierText
	}
	return failurePrefix + err.Error()
}
