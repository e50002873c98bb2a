package llm

import (
	"context"
	"encoding/json"

	llmclient "agenthub/internal/llmClient"
	"agenthub/internal/schema"

	"golang.org/x/time/rate"
)

// Middleware decorates an LLMClient to inject cross-cutting concerns
// (rate limiting, logging, metrics).
type Middleware func(llmclient.LLMClient) llmclient.LLMClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.LLMClient, mws ...Middleware) llmclient.LLMClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		out = mws[i](out)
	}
	return out
}

// RateLimit waits for a token before each call. rps <= 0 disables it.
// Waiting never retries; a canceled wait surfaces as a transport failure.
func RateLimit(rps float64, burst int) Middleware {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &rateLimited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type rateLimited struct {
	next    llmclient.LLMClient
	limiter *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }

func (c *rateLimited) GenerateJSON(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, llmclient.NewTransportError(c.next.Name(), err)
	}
	return c.next.GenerateJSON(ctx, prompt, s)
}
