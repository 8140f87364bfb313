package actor

import (
	"errors"
	"fmt"
)

// ErrNoCaller is returned when a call is attempted without an identity.
var ErrNoCaller = errors.New("actor: no caller identity on context")

// CallError is a failed remote call. Message is the raw text from the actor.
type CallError struct {
	Method  string
	Status  int
	Message string
}

func (e *CallError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Method, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Method, e.Status, e.Message)
}
