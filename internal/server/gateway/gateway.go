// Package gateway adapts the external chat-completion API. The call is a
// single synchronous request with a fixed timeout; streaming, retries,
// and rate limiting are out of scope.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// DefaultBaseURL points at the Groq OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// MaxTokens caps the response size of a single completion.
	MaxTokens = 1024

	// RequestTimeout bounds one synchronous completion call.
	RequestTimeout = 30 * time.Second

	MinTemperature = 0.1
	MaxTemperature = 1.0
)

// Request carries everything needed for one completion call. Messages
// already include the system prompt first and the trailing transcript
// window in original order.
type Request struct {
	Model       string
	Temperature float64
	Messages    []models.Message
}

// Completer produces one assistant reply for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ClampTemperature bounds t to the supported range.
func ClampTemperature(t float64) float64 {
	if t < MinTemperature {
		return MinTemperature
	}
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
}

// Client is the langchaingo-backed Completer.
type Client struct {
	llm *openai.LLM
}

// New builds a Client for the given API credential and base URL. An
// empty base URL selects the Groq endpoint.
func New(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("create completion client: %w", err)
	}

	return &Client{llm: llm}, nil
}

// Complete performs one non-streamed completion. Any transport, API, or
// payload failure is wrapped in common.ErrGateway.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		content = append(content, llms.TextParts(roleToMessageType(m.Role), m.Content))
	}

	resp, err := c.llm.GenerateContent(ctx, content,
		llms.WithModel(req.Model),
		llms.WithTemperature(ClampTemperature(req.Temperature)),
		llms.WithMaxTokens(MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrGateway, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", fmt.Errorf("%w: empty completion", common.ErrGateway)
	}

	return resp.Choices[0].Content, nil
}

func roleToMessageType(r models.Role) llms.ChatMessageType {
	switch r {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
