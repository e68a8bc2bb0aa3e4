package utils

import (
	"strings"
)

type Errors []error

func (e Errors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Unwrap lets errors.Is and errors.As look at every collected error.
func (e Errors) Unwrap() []error {
	return e
}

func (e *Errors) Append(err error) {
	if err != nil {
		*e = append(*e, err)
	}
}

func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// ErrOrNil returns nil when nothing was collected. Return this rather than e
// itself: a nil Errors stored in an error interface is not == nil.
func (e Errors) ErrOrNil() error {
	if e.IsEmpty() {
		return nil
	}
	return e
}
