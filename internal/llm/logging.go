package llm

import (
	"context"
	"encoding/json"
	"time"

	llmclient "agenthub/internal/llmClient"
	"agenthub/internal/schema"

	"go.uber.org/zap"
)

// WithLogging logs request size, latency, and errors. A nil logger
// disables output.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &logging{next: next, log: logger.Named("llm")}
	}
}

type logging struct {
	next llmclient.LLMClient
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateJSON(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error) {
	fields := []zap.Field{
		zap.String("client", l.next.Name()),
		zap.String("domain", domainOf(s)),
		zap.Int("prompt_bytes", len(prompt)),
	}
	l.log.Debug("llm request", fields...)
	start := time.Now()
	raw, err := l.next.GenerateJSON(ctx, prompt, s)
	fields = append(fields, zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		l.log.Warn("llm error", append(fields, zap.Error(err))...)
		return raw, err
	}
	l.log.Debug("llm response", append(fields, zap.Int("response_bytes", len(raw)))...)
	return raw, nil
}

func domainOf(s *schema.Schema) string {
	if s == nil {
		return "unknown"
	}
	return string(s.Domain)
}
