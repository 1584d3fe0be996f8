package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"hrportal/recruiting-api/internal/logger"
)

type MessageRole string

const (
	RoleSystem MessageRole = "system"
	RoleUser   MessageRole = "user"
)

// Message is one role-tagged entry of a single-turn model request.
type Message struct {
	Role    MessageRole
	Content string
}

// LLMService sends one stateless request to a language model and returns its
// text completion.
type LLMService interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

const maxLogPreview = 200

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	log         *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, temperature float32, log *zap.Logger) (LLMService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client, model, temperature, log), nil
}

func newGeminiService(client *genai.Client, model string, temperature float32, log *zap.Logger) *geminiService {
	if model = strings.TrimSpace(model); model == "" {
		model = "gemini-2.5-flash"
	}

	return &geminiService{
		client:      client,
		modelName:   model,
		temperature: temperature,
		log:         log,
	}
}

// Complete implements LLMService. System messages become the system
// instruction, user messages the request contents. A response without text
// (for example a MAX_TOKENS or SAFETY finish) is returned as "" with no
// error; only transport and API failures are errors.
func (g *geminiService) Complete(ctx context.Context, messages []Message) (string, error) {
	system, contents := splitMessages(messages)
	if len(contents) == 0 {
		// Gemini rejects a request without user content.
		if system == "" {
			return "", errors.New("no messages to send")
		}
		contents = []*genai.Content{{
			Role:  string(genai.RoleUser),
			Parts: []*genai.Part{{Text: system}},
		}}
		system = ""
	}

	temperature := g.temperature
	// no output cap: thinking tokens count against it on 2.5 models
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	g.log.Debug("gemini generate content request",
		zap.String("model", g.modelName),
		zap.Int("system_length", utf8.RuneCountInString(system)),
		zap.Int("contents", len(contents)),
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.log.Warn("gemini returned no text",
			zap.String("model", g.modelName),
			zap.String("finish_reason", finishReason(resp)),
		)
		return "", nil
	}

	g.log.Debug("gemini generate content response",
		zap.String("model", g.modelName),
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", logger.TruncateForLog(text, maxLogPreview)),
	)

	return text, nil
}

func splitMessages(messages []Message) (string, []*genai.Content) {
	var (
		systemParts []string
		contents    []*genai.Content
	)

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, m.Content)
		default:
			contents = append(contents, &genai.Content{
				Role:  string(genai.RoleUser),
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	return strings.Join(systemParts, "\n\n"), contents
}

func finishReason(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "BLOCKED_" + string(resp.PromptFeedback.BlockReason)
		}
		return "NO_CANDIDATES"
	}
	return string(resp.Candidates[0].FinishReason)
}
