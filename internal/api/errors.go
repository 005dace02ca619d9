package api

import "fmt"

// Error is a transport-level failure from the ledger backend: a non-2xx
// response or a network error. Message carries the backend's {message}
// payload when one was provided.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status > 0 {
		return fmt.Sprintf("operation failed (status %d)", e.Status)
	}
	return "operation failed"
}
