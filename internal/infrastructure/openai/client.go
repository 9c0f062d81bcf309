package openai

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/querygen/backend/internal/domain"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Client exposes the OpenAI chat completions API as a domain.ChatClient.
type Client struct {
	api         *openai.Client
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new chat completion client. An empty baseURL keeps
// the SDK default endpoint; tests point it at a local fake.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{
		Timeout: 60 * time.Second,
	}

	// Keep outbound request rate modest; the admission gate in the batch
	// orchestrator bounds concurrency, this bounds sustained throughput.
	limiter := rate.NewLimiter(rate.Limit(3), 5)

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug toggles raw completion logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Complete sends one system/user prompt pair to the chat completions
// endpoint. A response without choices is returned as-is; only transport
// and API failures produce an error.
func (c *Client) Complete(ctx context.Context, system, user string, params domain.SamplingParams) (*domain.Completion, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		TopP:             params.TopP,
		FrequencyPenalty: params.FrequencyPenalty,
		PresencePenalty:  params.PresencePenalty,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCompletionFailure, err)
	}

	completion := &domain.Completion{
		Choices: make([]domain.Choice, 0, len(resp.Choices)),
	}
	for _, choice := range resp.Choices {
		completion.Choices = append(completion.Choices, domain.Choice{Content: choice.Message.Content})
	}

	if c.debug {
		log.Printf("[OpenAI] model=%s choices=%d raw=%q", c.model, len(completion.Choices), completion.FirstContent())
	}

	return completion, nil
}
