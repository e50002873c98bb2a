package llmclient

import (
	"context"
	"encoding/json"
	"strings"

	"agenthub/internal/schema"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself. Cross-cutting concerns
// (rate limiting, logging, metrics) are applied via middleware.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// GenerateJSON asks for application/json constrained by the schema and
// returns the model text unchanged.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   GeminiSchema(s),
		},
	)
	if err != nil {
		return nil, NewTransportError(g.Name(), err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, NewMalformedResponseError(g.Name(), ErrEmptyResponse)
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	txt := strings.TrimSpace(b.String())
	if txt == "" {
		return nil, NewMalformedResponseError(g.Name(), ErrEmptyResponse)
	}
	return json.RawMessage(txt), nil
}

// GeminiSchema converts a registry schema into the array-of-objects response
// schema understood by the Gemini API.
func GeminiSchema(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	props := make(map[string]*genai.Schema, len(s.Fields))
	order := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		var fs *genai.Schema
		switch f.Kind {
		case schema.KindInteger:
			fs = &genai.Schema{Type: genai.TypeInteger}
			if f.Min != nil {
				minimum := float64(*f.Min)
				fs.Minimum = &minimum
			}
		case schema.KindStringArray:
			fs = &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
		case schema.KindEnum:
			fs = &genai.Schema{Type: genai.TypeString, Enum: f.Enum}
		default:
			fs = &genai.Schema{Type: genai.TypeString}
		}
		fs.Description = f.Description
		props[f.Name] = fs
		order = append(order, f.Name)
	}
	out := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:             genai.TypeObject,
			Properties:       props,
			Required:         s.Required(),
			PropertyOrdering: order,
		},
	}
	if s.MaxItems > 0 {
		maxItems := int64(s.MaxItems)
		out.MaxItems = &maxItems
	}
	return out
}
