package speech

import (
	"errors"
	"fmt"
)

// ErrEmptyResult reports that the recognizer produced no usable
// transcript. It is an expected outcome of a silent capture, never a
// transport failure, and callers word their messages accordingly.
var ErrEmptyResult = errors.New("no speech detected")

// ProviderError is a non-success response from a remote provider. The
// diagnostic body is truncated before it gets here.
type ProviderError struct {
	Operation string
	Status    int
	Message   string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s provider request failed with status %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("%s provider request failed with status %d: %s", e.Operation, e.Status, e.Message)
}

// MalformedResponseError reports an unparseable or contract-violating
// provider payload.
type MalformedResponseError struct {
	Operation string
	Reason    string
	Err       error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s provider response: %s: %v", e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s provider response: %s", e.Operation, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
