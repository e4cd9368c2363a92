package agent

import (
	"errors"
	"fmt"
)

// ErrUnknownIntent marks an intent name outside the fixed vocabulary.
// Non-fatal: the executor reports it as an error outcome and the turn
// continues.
var ErrUnknownIntent = errors.New("unknown intent")

// ValidationError reports an intent missing a required argument.
type ValidationError struct {
	Intent string
	Arg    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s requires %q argument", e.Intent, e.Arg)
}

func missingArg(intent, arg string) *ValidationError {
	return &ValidationError{Intent: intent, Arg: arg}
}
