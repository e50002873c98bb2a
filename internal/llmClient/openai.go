package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agenthub/internal/schema"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const DefaultOpenAIBaseURL = "https://openrouter.ai/api/v1"

// OpenAIClient talks to OpenAI-compatible chat completion endpoints
// (OpenAI, OpenRouter) using strict json_schema response formats.
type OpenAIClient struct {
	cli   *openai.Client
	model string
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{cli: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAIClient) Name() string { return "OpenAI:" + o.model }
func (o *OpenAIClient) Close() error { return nil }

// openAIEnvelope wraps the record array: strict schemas need an object root.
type openAIEnvelope struct {
	Items json.RawMessage `json:"items"`
}

func (o *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error) {
	def := OpenAISchema(s)
	resp, err := o.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName(s),
				Schema: &def,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, NewTransportError(o.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return nil, NewMalformedResponseError(o.Name(), ErrEmptyResponse)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, NewMalformedResponseError(o.Name(), ErrEmptyResponse)
	}
	var env openAIEnvelope
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return nil, NewMalformedResponseError(o.Name(), fmt.Errorf("decode envelope: %w", err))
	}
	if len(env.Items) == 0 {
		return nil, NewMalformedResponseError(o.Name(), errors.New(`envelope has no "items"`))
	}
	return env.Items, nil
}

func schemaName(s *schema.Schema) string {
	if s == nil || s.Domain == "" {
		return "results"
	}
	return string(s.Domain) + "_results"
}

// OpenAISchema converts a registry schema into a strict JSON schema whose
// root object holds the record array under "items".
func OpenAISchema(s *schema.Schema) jsonschema.Definition {
	props := map[string]jsonschema.Definition{}
	var required []string
	if s != nil {
		for _, f := range s.Fields {
			var fd jsonschema.Definition
			switch f.Kind {
			case schema.KindInteger:
				fd = jsonschema.Definition{Type: jsonschema.Integer}
			case schema.KindStringArray:
				fd = jsonschema.Definition{Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}}
			case schema.KindEnum:
				fd = jsonschema.Definition{Type: jsonschema.String, Enum: f.Enum}
			default:
				fd = jsonschema.Definition{Type: jsonschema.String}
			}
			fd.Description = f.Description
			props[f.Name] = fd
		}
		required = s.Required()
	}
	item := jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"items": {Type: jsonschema.Array, Items: &item},
		},
		Required:             []string{"items"},
		AdditionalProperties: false,
	}
}
