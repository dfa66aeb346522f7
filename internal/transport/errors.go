package transport

import (
	"errors"
	"fmt"
)

// ErrUnavailable classifies every remote failure the orchestrator can
// recover from. Network errors and non-2xx responses are deliberately
// indistinguishable: either way the remote is unavailable and the
// caller falls back to local persistence.
var ErrUnavailable = errors.New("remote unavailable")

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d", e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnavailable
}
