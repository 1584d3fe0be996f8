package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubLLM struct {
	response string
	err      error
	calls    [][]Message
}

func (s *stubLLM) Complete(_ context.Context, messages []Message) (string, error) {
	s.calls = append(s.calls, messages)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "well formed",
			response: "Question 1: What is a goroutine?\nQuestion 2: Explain channels.\nQuestion 3: How does GC work?",
			want:     []string{"Question 1: What is a goroutine?", "Question 2: Explain channels.", "Question 3: How does GC work?"},
		},
		{
			name:     "preamble and crlf",
			response: "Sure! Here they are:\r\nQuestion 1: A?\r\nQuestion 2: B?\r\nQuestion 3: C?\r\n",
			want:     []string{"Question 1: A?", "Question 2: B?", "Question 3: C?"},
		},
		{
			name:     "more than three truncated",
			response: "Question 1: A\nQuestion 2: B\nQuestion 3: C\nQuestion 4: D",
			want:     []string{"Question 1: A", "Question 2: B", "Question 3: C"},
		},
		{
			name:     "fewer than three not padded",
			response: "Question 1: Only one",
			want:     []string{"Question 1: Only one"},
		},
		{
			name:     "no space before number",
			response: "Question1: Tight spacing",
			want:     []string{"Question1: Tight spacing"},
		},
		{
			name:     "fallback keeps lines verbatim",
			response: "QUESTION one - Describe SQL joins\n  question two - What is an index?\nThanks",
			want:     []string{"QUESTION one - Describe SQL joins", "  question two - What is an index?"},
		},
		{
			name:     "no question lines",
			response: "1. What is Go?\n2. What is Rust?\n3. What is Zig?",
			want:     nil,
		},
		{
			name:     "empty response",
			response: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuestions(tt.response)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseQuestions() = %#v, want %#v", got, tt.want)
			}
			if len(got) > 3 {
				t.Fatalf("expected at most 3 questions, got %d", len(got))
			}
		})
	}
}

func TestQuestionGeneratorGenerate(t *testing.T) {
	stub := &stubLLM{response: "Question 1: A?\nQuestion 2: B?\nQuestion 3: C?"}
	generator := NewQuestionGenerator(stub, zap.NewNop())

	requirements := "5+ years of Python\nExperience with Django"
	questions, err := generator.Generate(context.Background(), requirements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	if len(stub.calls) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(stub.calls))
	}
	messages := stub.calls[0]
	if len(messages) != 1 {
		t.Fatalf("expected a single message, got %d", len(messages))
	}
	if !strings.Contains(messages[0].Content, requirements) {
		t.Fatalf("expected requirements embedded verbatim in prompt")
	}
	if !strings.Contains(messages[0].Content, "Question 1: ...") {
		t.Fatalf("expected prompt to spell out the output format")
	}
}

func TestQuestionGeneratorPropagatesModelFailure(t *testing.T) {
	modelErr := errors.New("quota exceeded")
	generator := NewQuestionGenerator(&stubLLM{err: modelErr}, zap.NewNop())

	_, err := generator.Generate(context.Background(), "Go")
	if !errors.Is(err, modelErr) {
		t.Fatalf("expected model error to propagate, got %v", err)
	}
}

func TestQuestionGeneratorMalformedResponse(t *testing.T) {
	generator := NewQuestionGenerator(&stubLLM{response: "I cannot help with that."}, zap.NewNop())

	questions, err := generator.Generate(context.Background(), "Go")
	if err != nil {
		t.Fatalf("malformed output must not be an error, got %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected no questions, got %v", questions)
	}
}
