// Package llm wraps the chat-completion providers used to interpret prompts.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider turns a system instruction and user text into model text.
type Provider interface {
	// Complete sends one completion request. It never retries.
	Complete(ctx context.Context, system, user string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Model returns the configured model name.
	Model() string
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

const (
	defaultDeepSeekBaseURL = "https://api.deepseek.com/v1"
	defaultDeepSeekModel   = "deepseek-chat"
	defaultMaxTokens       = 1024
)

// New returns the provider named by cfg.Provider.
func New(cfg ProviderConfig) (Provider, error) {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return NewOpenAIProvider(cfg)
	case "deepseek":
		// DeepSeek speaks the OpenAI chat-completions protocol
		if cfg.BaseURL == "" {
			cfg.BaseURL = defaultDeepSeekBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = defaultDeepSeekModel
		}
		p, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, err
		}
		p.name = "deepseek"
		return p, nil
	case "anthropic":
		return NewAnthropicProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// withTimeout bounds a single completion call.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
