package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/chirraaggggg/github-roaster/internal/application/service"
	"github.com/chirraaggggg/github-roaster/internal/config"
	"github.com/chirraaggggg/github-roaster/pkg/apperror"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

// groqAdapter talks to Groq's OpenAI-compatible chat completion endpoint.
type groqAdapter struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	log         logger.Logger
}

func NewGroqAdapter(cfg config.Config, log logger.Logger) service.LLMService {
	clientConfig := openai.DefaultConfig(cfg.Groq.APIKey)
	clientConfig.BaseURL = cfg.Groq.APIBase

	client := openai.NewClientWithConfig(clientConfig)

	log.Info("Groq Chat (LLM) Adapter initialized")
	return &groqAdapter{
		client:      client,
		apiKey:      cfg.Groq.APIKey,
		model:       cfg.Groq.Model,
		temperature: float32(cfg.Roast.Temperature),
		maxTokens:   cfg.Roast.MaxTokens,
		log:         log,
	}
}

func (a *groqAdapter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	// Missing credential is a local configuration failure; the provider is
	// never contacted.
	if a.apiKey == "" {
		return "", apperror.NewConfiguration("GROQ_API_KEY is not set")
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", apperror.NewProvider("Groq chat completion request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperror.NewMalformedResponse("Groq returned no chat choices")
	}

	return resp.Choices[0].Message.Content, nil
}
