package agent

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"reapo/internal/logger"
)

// Agent dispatches conversations to Claude and returns its reply. It holds
// no tool registry: the prompt editor's host only needs single-turn text
// completion, not a tool-execution loop.
type Agent struct {
	client       *anthropic.Client
	systemPrompt string
}

// NewAgent creates a new agent bound to client, replying under systemPrompt.
func NewAgent(client *anthropic.Client, systemPrompt string) *Agent {
	return &Agent{client: client, systemPrompt: systemPrompt}
}

// GenerateText runs inference on a single user message and returns the text
// response.
func (a *Agent) GenerateText(ctx context.Context, message string) (string, error) {
	conversation := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
	}

	response, err := a.RunInference(ctx, conversation)
	if err != nil {
		return "", err
	}
	return extractText(response), nil
}

// RunInference executes inference with Claude API over the given
// conversation.
func (a *Agent) RunInference(ctx context.Context, conversation []anthropic.MessageParam) (*anthropic.Message, error) {
	logger.Chat("REQUEST", map[string]interface{}{
		"model":        "claude-4-sonnet-20250514",
		"messageCount": len(conversation),
	})

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: int64(1024),
		Messages:  conversation,
		System:    []anthropic.TextBlockParam{{Type: "text", Text: a.systemPrompt}},
	})

	if err != nil {
		logger.Chat("ERROR", map[string]interface{}{"error": err.Error()})
		logger.Error("API request failed: %v", err)
	} else {
		logger.Chat("RESPONSE", message)
	}

	return message, err
}

// extractText concatenates every text content block in a response.
func extractText(response *anthropic.Message) string {
	var b strings.Builder
	for _, content := range response.Content {
		if content.Type == "text" {
			b.WriteString(content.Text)
		}
	}
	return b.String()
}
