package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"hrportal/recruiting-api/internal/logger"
	"hrportal/recruiting-api/internal/models"
)

type CandidateEvaluator interface {
	Evaluate(ctx context.Context, requirements, resumeText string, answers []models.AnswerRecord) (string, error)
}

type candidateEvaluator struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewCandidateEvaluator(llm LLMService, log *zap.Logger) CandidateEvaluator {
	return &candidateEvaluator{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

// Evaluate implements CandidateEvaluator. The rubric and requirements travel
// in the system message, the resume and answers in a separate user message.
// The model's text is returned as is; callers parse it with ExtractScore.
func (e *candidateEvaluator) Evaluate(ctx context.Context, requirements, resumeText string, answers []models.AnswerRecord) (string, error) {
	transcript := e.promptBuilder.BuildAnswerTranscript(answers)

	messages := []Message{
		{Role: RoleSystem, Content: e.promptBuilder.BuildEvaluationSystemPrompt(requirements)},
		{Role: RoleUser, Content: e.promptBuilder.BuildEvaluationUserPrompt(resumeText, transcript)},
	}

	e.log.Debug("evaluating candidate",
		zap.Int("answers", len(answers)),
		zap.Int("resume_length", utf8.RuneCountInString(resumeText)),
		zap.String("resume_preview", logger.TruncateForLog(resumeText, maxLogPreview)),
	)

	evaluation, err := e.llm.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate candidate: %w", err)
	}

	if _, ok := ExtractScore(evaluation); !ok {
		e.log.Warn("evaluation has no readable score",
			zap.String("evaluation_preview", logger.TruncateForLog(evaluation, maxLogPreview)),
		)
	}

	return evaluation, nil
}
