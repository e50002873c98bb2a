// Package agent implements the domain query functions: validate input,
// build the prompt, call the generator once, and decode typed records.
package agent

import (
	"context"
	"encoding/json"
	"strings"

	llmclient "agenthub/internal/llmClient"
	"agenthub/internal/prompt"
	"agenthub/internal/schema"
	"agenthub/internal/types"

	"go.uber.org/zap"
)

// Generator is the structured generation contract the agents depend on.
// *llm.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error)
}

// Spec configures one domain.
type Spec[T any] struct {
	Domain       types.Domain
	Title        string
	MissingInput string
	Failure      string
}

// Agent runs the shared query protocol for one domain.
type Agent[T any] struct {
	spec Spec[T]
	gen  Generator
	log  *zap.Logger
}

func New[T any](spec Spec[T], gen Generator, logger *zap.Logger) *Agent[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent[T]{spec: spec, gen: gen, log: logger.With(zap.String("domain", string(spec.Domain)))}
}

func (a *Agent[T]) Domain() types.Domain { return a.spec.Domain }
func (a *Agent[T]) Title() string        { return a.spec.Title }

// CheckInput returns a ValidationError for blank or whitespace-only input.
func (a *Agent[T]) CheckInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return &ValidationError{Domain: a.spec.Domain, Message: a.spec.MissingInput}
	}
	return nil
}

// Query returns the full validated record list (possibly empty) or an error.
// It never returns a partial list.
func (a *Agent[T]) Query(ctx context.Context, input string) ([]T, error) {
	if err := a.CheckInput(input); err != nil {
		return nil, err
	}
	raw, err := a.gen.Generate(ctx, prompt.Build(a.spec.Domain, input), schema.Lookup(a.spec.Domain))
	if err != nil {
		return nil, a.fail(err)
	}
	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, a.fail(llmclient.NewMalformedResponseError("decode", err))
	}
	a.log.Debug("query complete", zap.Int("items", len(items)))
	return items, nil
}

func (a *Agent[T]) fail(err error) error {
	a.log.Warn("query failed", zap.Error(err))
	return &RetrievalError{Domain: a.spec.Domain, Message: a.spec.Failure, cause: err}
}
