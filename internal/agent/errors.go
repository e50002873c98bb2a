package agent

import (
	"agenthub/internal/types"
)

// ValidationError rejects blank input before any generation call.
type ValidationError struct {
	Domain  types.Domain
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RetrievalError is the single user-facing failure of a domain query. Its
// message never carries transport details; the cause is kept for logs.
type RetrievalError struct {
	Domain  types.Domain
	Message string
	cause   error
}

func (e *RetrievalError) Error() string { return e.Message }
func (e *RetrievalError) Unwrap() error { return e.cause }
