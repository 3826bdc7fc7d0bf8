// Package summarize turns the extracted activities markdown into a summary
// via an OpenAI-compatible chat model. The user owns the prompt wording
// through a template file; this package only substitutes the activities
// into it and manages the single completion call.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/leftoffsum/internal/cache"
	"github.com/hyperifyio/leftoffsum/internal/llm"
)

// Placeholder is the literal token in the prompt template that is replaced
// with the rendered activities markdown.
const Placeholder = "<< last-7-days-activities.md >>"

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ErrEmptySummary indicates the model returned no usable content.
var ErrEmptySummary = errors.New("empty summary from model")

// Summarizer calls the chat model with the filled-in prompt template.
type Summarizer struct {
	Client llm.Client
	Model  string
	// Cache, when non-nil with a directory, reuses replies for identical
	// prompts across runs.
	Cache *cache.SummaryCache
}

// BuildPrompt substitutes the activities markdown into the template.
func BuildPrompt(template, activities string) string {
	return strings.ReplaceAll(template, Placeholder, activities)
}

// Summarize reads the prompt template file, substitutes the activities
// content, and returns the model's summary prefixed with the reference
// date in YYYY-MM-DD form.
func (s *Summarizer) Summarize(ctx context.Context, promptPath, activities string, ref time.Time) (string, error) {
	if s.Client == nil {
		return "", errors.New("summarizer not configured")
	}
	tmpl, err := os.ReadFile(promptPath)
	if err != nil {
		return "", fmt.Errorf("read prompt template: %w", err)
	}
	prompt := BuildPrompt(string(tmpl), activities)

	model := s.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	body, err := s.complete(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	return ref.Format("2006-01-02") + "\n\n" + body + "\n", nil
}

func (s *Summarizer) complete(ctx context.Context, model, prompt string) (string, error) {
	key := cache.KeyFrom(model, prompt)
	if hit, ok := s.Cache.Get(ctx, key); ok {
		return hit, nil
	}

	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("summary call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptySummary
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptySummary
	}
	if err := s.Cache.Save(ctx, key, out); err != nil {
		log.Warn().Err(err).Msg("summary cache save failed")
	}
	return out, nil
}
