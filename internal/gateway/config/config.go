package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	llmclient "agenthub/internal/llmClient"

	"github.com/joho/godotenv"
)

var ErrMissingCredential = errors.New("config: missing model credential")

type Config struct {
	Port     string
	Env      string
	LogLevel string
	LLM      LLMConfig
	Session  SessionConfig
}

type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	RPS      float64
	Burst    int
}

type SessionConfig struct {
	TTL time.Duration
	Max int
}

func (c LLMConfig) Settings() llmclient.Settings {
	return llmclient.Settings{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}
}

// Load reads .env (if present), the command line and the process
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Args[1:], os.Getenv)
}

// FromEnv resolves configuration from args and getenv only.
func FromEnv(args []string, getenv func(string) string) (*Config, error) {
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	port := fs.String("port", ":8081", "server port")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	env := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if envPort := env("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	appEnv := firstNonEmpty(env("APP_ENV"), "local")

	llm, err := loadLLMConfig(env)
	if err != nil {
		return nil, err
	}
	sess, err := loadSessionConfig(env)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     *port,
		Env:      appEnv,
		LogLevel: firstNonEmpty(env("LOG_LEVEL"), "info"),
		LLM:      llm,
		Session:  sess,
	}, nil
}

func loadLLMConfig(env func(string) string) (LLMConfig, error) {
	provider := strings.ToLower(firstNonEmpty(env("LLM_PROVIDER"), llmclient.ProviderGemini))

	cfg := LLMConfig{
		Provider: provider,
		Model:    firstNonEmpty(env("LLM_MODEL"), llmclient.DefaultModel(provider)),
		Burst:    1,
	}
	switch provider {
	case llmclient.ProviderGemini:
		cfg.APIKey = firstNonEmpty(env("GEMINI_API_KEY"), env("API_KEY"))
	case llmclient.ProviderOpenAI:
		cfg.APIKey = firstNonEmpty(env("OPENAI_API_KEY"), env("OPENROUTER_API_KEY"))
		cfg.BaseURL = firstNonEmpty(env("OPENAI_BASE_URL"), llmclient.DefaultOpenAIBaseURL)
	case llmclient.ProviderFake:
	default:
		return LLMConfig{}, fmt.Errorf("config: unknown LLM_PROVIDER %q", provider)
	}
	if llmclient.RequiresAPIKey(provider) && cfg.APIKey == "" {
		return LLMConfig{}, fmt.Errorf("%w for provider %s", ErrMissingCredential, provider)
	}

	if raw := env("LLM_RPS"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return LLMConfig{}, fmt.Errorf("config: invalid LLM_RPS %q", raw)
		}
		cfg.RPS = v
	}
	if raw := env("LLM_BURST"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return LLMConfig{}, fmt.Errorf("config: invalid LLM_BURST %q", raw)
		}
		cfg.Burst = v
	}
	return cfg, nil
}

func loadSessionConfig(env func(string) string) (SessionConfig, error) {
	cfg := SessionConfig{TTL: 30 * time.Minute, Max: 1024}
	if raw := env("SESSION_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return SessionConfig{}, fmt.Errorf("config: invalid SESSION_TTL %q", raw)
		}
		cfg.TTL = d
	}
	if raw := env("SESSION_MAX"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return SessionConfig{}, fmt.Errorf("config: invalid SESSION_MAX %q", raw)
		}
		cfg.Max = n
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
