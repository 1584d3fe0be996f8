package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const maxQuestions = 3

var questionLinePattern = regexp.MustCompile(`Question\s*\d+:\s*.*`)

type QuestionGenerator interface {
	Generate(ctx context.Context, requirements string) ([]string, error)
}

type questionGenerator struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewQuestionGenerator(llm LLMService, log *zap.Logger) QuestionGenerator {
	return &questionGenerator{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

// Generate implements QuestionGenerator. One model call, best-effort parse:
// a malformed response yields fewer than three questions, not an error.
func (g *questionGenerator) Generate(ctx context.Context, requirements string) ([]string, error) {
	prompt := g.promptBuilder.BuildQuestionPrompt(requirements)

	response, err := g.llm.Complete(ctx, []Message{{Role: RoleUser, Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	questions := ParseQuestions(response)
	if len(questions) < maxQuestions {
		g.log.Warn("model returned fewer questions than requested",
			zap.Int("requested", maxQuestions),
			zap.Int("parsed", len(questions)),
		)
	}

	return questions, nil
}

// ParseQuestions pulls "Question N: ..." lines out of a model response. When
// none match it falls back to every line starting with "question" (any case).
// The result holds at most three entries and is never padded.
func ParseQuestions(response string) []string {
	text := strings.TrimSpace(strings.ReplaceAll(response, "\r\n", "\n"))

	var questions []string
	for _, match := range questionLinePattern.FindAllString(text, -1) {
		questions = append(questions, strings.TrimSpace(match))
	}

	if len(questions) == 0 {
		for _, line := range strings.Split(text, "\n") {
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "question") {
				questions = append(questions, line)
			}
		}
	}

	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}
