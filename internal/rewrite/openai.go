// Package rewrite implements the optional hint-rewriting collaborator
// on top of an OpenAI-compatible chat completion endpoint.
package rewrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
)

// OpenAI rewrites hint text through a chat completion model. A custom
// base URL covers self-hosted OpenAI-compatible endpoints.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a rewriter. An empty model falls back to gpt-4o-mini.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	return &OpenAI{client: openai.NewClient(opts...), model: model}
}

// Rewrite sends the synthesized note and current time to the model and
// returns its one-sentence phrasing. The caller owns the timeout via
// ctx and treats every error as non-fatal.
func (c *OpenAI) Rewrite(ctx context.Context, note models.Note, now time.Time) (string, error) {
	payload, err := json.Marshal(noteJSON(note))
	if err != nil {
		return "", fmt.Errorf("rewrite: marshal note: %w", err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(now)),
			openai.UserMessage("Input:\n" + string(payload)),
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return "", fmt.Errorf("rewrite: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("rewrite: completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// noteJSON renders a note in the service's wire shape for the prompt.
func noteJSON(n models.Note) map[string]any {
	triggers := make([]map[string]string, len(n.Triggers))
	for i, t := range n.Triggers {
		triggers[i] = map[string]string{
			"triggerType":  string(t.Kind),
			"triggerValue": t.Value,
		}
	}
	var updated any
	if n.UpdatedAt != nil {
		updated = n.UpdatedAt.Format(models.TimeLayout)
	}
	return map[string]any{
		"text":         n.Text,
		"createdAt":    n.CreatedAt.Format(models.TimeLayout),
		"updatedAt":    updated,
		"categoryType": string(n.Category),
		"triggers":     triggers,
	}
}
