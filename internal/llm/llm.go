// Package llm generates the assistant's user-facing text: the chat intro and
// the application email body.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
)

// Generator produces text from a system prompt and a user prompt. Composer is
// the only consumer; it supplies template fallbacks, so implementations may
// fail freely.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type OpenAI struct {
	client openai.Client
	model  string
	temp   float64
}

// NewOpenAI reads the API key from the environment (OPENAI_API_KEY).
func NewOpenAI(model string, temp float64) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(),
		model:  model,
		temp:   temp,
	}
}

func (o *OpenAI) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	// Bounded below the webhook's 60s middleware timeout so a slow completion
	// fails here, not at the transport.
	ctx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)

	if len(systemPrompt) > 0 {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	res, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       o.model,
		Temperature: openai.Float(o.temp),
	})
	if err != nil {
		slog.Error("chat completion request failed", "model", o.model, "error", err)
		return "", fmt.Errorf("error generating text with model %s: %w", o.model, err)
	}

	return res.Choices[0].Message.Content, nil
}
