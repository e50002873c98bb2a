package llmclient

import (
	"context"
	"encoding/json"
	"errors"

	"agenthub/internal/schema"
)

// LLMClient performs exactly one structured generation request per call.
// Implementations must not retry.
type LLMClient interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error)
	Close() error
}

var ErrEmptyResponse = errors.New("llm: empty response from model")

// TransportError reports a network, auth, or service-availability failure
// while calling the generation service.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return "llm transport failure (" + e.Provider + "): " + e.Err.Error()
}
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports a call that succeeded but returned a
// payload that is not parseable against the expected shape.
type MalformedResponseError struct {
	Provider string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return "llm malformed response (" + e.Provider + "): " + e.Err.Error()
}
func (e *MalformedResponseError) Unwrap() error { return e.Err }

func NewTransportError(provider string, err error) error {
	return &TransportError{Provider: provider, Err: err}
}

func NewMalformedResponseError(provider string, err error) error {
	return &MalformedResponseError{Provider: provider, Err: err}
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsMalformed reports whether err is, or wraps, a MalformedResponseError.
func IsMalformed(err error) bool {
	var m *MalformedResponseError
	return errors.As(err, &m)
}
