package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pratik-mahalle/freelancehub/internal/domain/insight"
)

// Summary sources
const (
	SummarySourceAI       = "ai"
	SummarySourceTemplate = "template"
)

// Summarizer turns a list of insights into a short narrative
type Summarizer interface {
	Summarize(ctx context.Context, insights []insight.Insight) (string, error)
	Source() string
}

// NewSummarizer returns an OpenAI summarizer when apiKey is set, otherwise the template one.
func NewSummarizer(apiKey, model string) Summarizer {
	if apiKey == "" {
		return TemplateSummarizer{}
	}
	return NewOpenAISummarizer(openai.NewClient(apiKey), model)
}

// ChatCompleter is the subset of the OpenAI client used for summaries
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAISummarizer narrates insights with the chat completions API
type OpenAISummarizer struct {
	client ChatCompleter
	model  string
}

// NewOpenAISummarizer creates a summarizer over an OpenAI chat client
func NewOpenAISummarizer(client ChatCompleter, model string) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{client: client, model: model}
}

// Source implements Summarizer
func (s *OpenAISummarizer) Source() string { return SummarySourceAI }

// Summarize implements Summarizer
func (s *OpenAISummarizer) Summarize(ctx context.Context, insights []insight.Insight) (string, error) {
	if len(insights) == 0 {
		return TemplateSummarizer{}.Summarize(ctx, insights)
	}

	var b strings.Builder
	b.WriteString("You are a business coach for a freelancer. In at most three sentences, ")
	b.WriteString("summarize these metrics and suggest one concrete next step. Do not invent numbers.\n\n")
	for _, ins := range insights {
		fmt.Fprintf(&b, "- %s: %s (%s, trend %s)\n", ins.Title, ins.Value, ins.Description, ins.Trend)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: b.String(),
		}},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TemplateSummarizer builds a deterministic summary from titles and values
type TemplateSummarizer struct{}

// Source implements Summarizer
func (TemplateSummarizer) Source() string { return SummarySourceTemplate }

// Summarize implements Summarizer
func (TemplateSummarizer) Summarize(_ context.Context, insights []insight.Insight) (string, error) {
	if len(insights) == 0 {
		return "Not enough activity yet. Track time and send invoices to unlock insights.", nil
	}
	parts := make([]string, 0, len(insights))
	for _, ins := range insights {
		parts = append(parts, fmt.Sprintf("%s: %s", ins.Title, ins.Value))
	}
	return strings.Join(parts, ". ") + ".", nil
}
