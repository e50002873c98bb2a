package llm

import (
	"context"
	"encoding/json"
	"time"

	llmclient "agenthub/internal/llmClient"
	"agenthub/internal/schema"
)

// Generator is the schema-enforcing front of a client chain. Every call
// is a single attempt: the payload either satisfies the schema or the call
// fails with a TransportError or MalformedResponseError.
type Generator struct {
	client  llmclient.LLMClient
	metrics *Metrics
}

// NewGenerator wraps client with mws. metrics may be nil.
func NewGenerator(client llmclient.LLMClient, metrics *Metrics, mws ...Middleware) *Generator {
	return &Generator{client: Wrap(client, mws...), metrics: metrics}
}

func (g *Generator) Name() string { return g.client.Name() }
func (g *Generator) Close() error { return g.client.Close() }

// Generate sends prompt with s and returns the validated raw payload.
func (g *Generator) Generate(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error) {
	start := time.Now()
	raw, err := g.generate(ctx, prompt, s)
	g.metrics.Observe(domainOf(s), time.Since(start), err)
	return raw, err
}

func (g *Generator) generate(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error) {
	raw, err := g.client.GenerateJSON(ctx, prompt, s)
	if err != nil {
		if llmclient.IsTransport(err) || llmclient.IsMalformed(err) {
			return nil, err
		}
		return nil, llmclient.NewTransportError(g.client.Name(), err)
	}
	if err := s.Validate(raw); err != nil {
		return nil, llmclient.NewMalformedResponseError(g.client.Name(), err)
	}
	return raw, nil
}
