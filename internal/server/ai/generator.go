// Package ai wraps a chat-completion model behind a narrow, validated
// flashcard-generation contract. The model's raw text output is never
// trusted: a bracketed JSON array is extracted, parsed, and filtered before
// anything reaches the caller.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	openai "github.com/sashabaranov/go-openai"
)

// Flashcard is one generated question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// chatClient is the slice of the OpenAI client used here, so tests can
// substitute a fake.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Generator struct {
	client  chatClient
	model   string
	timeout time.Duration
}

// NewGenerator builds a Generator. timeout bounds each model call; the
// provider's latency is otherwise unbounded.
func NewGenerator(client chatClient, model string, timeout time.Duration) *Generator {
	return &Generator{client: client, model: model, timeout: timeout}
}

// NewClient constructs the production OpenAI-compatible client. baseURL may
// be empty for the default endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// matches the first bracketed array in the output, which may be wrapped in
// prose or a markdown fence
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

func buildPrompt(topic string, count int) string {
	return fmt.Sprintf(`Generate exactly %d flashcards for the topic: %q.

Each flashcard should have a clear question and a concise answer that helps with learning and understanding the topic.

Format your response as a JSON array with exactly this structure:
[
  {
    "question": "Clear, specific question about the topic",
    "answer": "Concise, accurate answer"
  }
]

Requirements:
- Questions should be diverse (definitions, examples, applications, comparisons, etc.)
- Answers should be informative but concise (1-3 sentences)
- Focus on key concepts and practical knowledge
- Ensure questions are clear and unambiguous
- Make flashcards educational and useful for studying

Topic: %s`, count, topic, topic)
}

// Generate asks the model for count flashcards about topic. It returns at
// most count validated cards; fewer is not an error, since a model that
// under-delivers still produced usable cards.
func (g *Generator) Generate(ctx context.Context, topic string, count int) ([]Flashcard, error) {

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(topic, count)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, common.ErrGenerationFailed
	}

	return parseAndValidate(resp.Choices[0].Message.Content, count)
}

// parseAndValidate extracts the JSON array from raw model output and keeps
// only well-formed entries. Malformed entries are dropped silently; models
// occasionally emit one bad element among usable ones.
func parseAndValidate(text string, count int) ([]Flashcard, error) {

	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return nil, common.ErrGenerationParse
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, common.ErrGenerationJSON
	}
	if len(items) == 0 {
		return nil, common.ErrNoCardsGenerated
	}

	valid := make([]Flashcard, 0, len(items))
	for _, item := range items {
		var card Flashcard
		if err := json.Unmarshal(item, &card); err != nil {
			continue
		}
		if strings.TrimSpace(card.Question) == "" || strings.TrimSpace(card.Answer) == "" {
			continue
		}
		valid = append(valid, card)
	}

	if len(valid) == 0 {
		return nil, common.ErrNoCardsGenerated
	}

	if len(valid) > count {
		valid = valid[:count]
	}

	return valid, nil
}
