package services

import (
	"regexp"
	"strconv"
	"strings"
)

// The evaluation prompt and the ranking parser both build on these labels,
// so the line the model is asked to write is always the line we look for.
const (
	ScoreLabel      = "Score"
	FinalScoreLabel = "Final " + ScoreLabel
	SummaryLabel    = "HR Summary"
)

var (
	scorePattern   = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(ScoreLabel) + `\s*:\s*(\d+(?:\.\d+)?)`)
	summaryPattern = regexp.MustCompile(`(?im)` + regexp.QuoteMeta(SummaryLabel) + `\s*:[ \t]*(.*)$`)
)

// ExtractScore returns the first "Score: N" value found anywhere in the
// evaluation text. ok is false when the text carries no score.
func ExtractScore(evaluation string) (score float64, ok bool) {
	m := scorePattern.FindStringSubmatch(evaluation)
	if m == nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

// ExtractSummary returns the text after the first "HR Summary:" label, or ""
// when the model left it out.
func ExtractSummary(evaluation string) string {
	m := summaryPattern.FindStringSubmatch(evaluation)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
