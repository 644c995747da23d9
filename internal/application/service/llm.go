package service

import (
	"context"
)

// LLMService submits a system/user prompt pair to a chat-completion
// endpoint and returns the text of the first choice.
type LLMService interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
