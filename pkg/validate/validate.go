// Package validate implements the question schema validator. Validation
// failures are data, never panics or control flow: every rule is applied
// and every error collected, so a caller sees the full picture for each
// record in one pass.
package validate

import (
	"fmt"
	"strings"

	"github.com/agentstation/qbank/pkg/questions"
)

// Declared maximum field lengths. Exceeding a maximum is an error, not a
// truncation.
const (
	MaxTitleLength    = 200
	MaxQuestionLength = 2000
	MaxTopicLength    = 100
	MaxSubtopicLength = 100
	MaxFeedbackLength = 1000
)

// Choice count bounds for multiple choice questions.
const (
	MinChoices = 2
	MaxChoices = 4
)

// Result is the validation outcome for a single record. Warnings are
// advisory only (missing feedback fields) and never affect Valid.
type Result struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Record validates a single question against the schema. Rules are applied
// in a fixed order and all errors are collected rather than
// short-circuited.
func Record(q questions.Question) Result {
	var errs []string

	// Required fields, present and non-blank.
	requireds := []struct {
		name  string
		value string
	}{
		{"type", string(q.Type)},
		{"title", q.Title},
		{"question_text", q.QuestionText},
		{"correct_answer", q.Answer.String()},
		{"topic", q.Topic},
		{"difficulty", string(q.Difficulty)},
	}
	for _, r := range requireds {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Sprintf("missing required field: %s", r.name))
		}
	}

	// Question type must be one of the known types.
	if strings.TrimSpace(string(q.Type)) != "" && !q.Type.IsValid() {
		errs = append(errs, fmt.Sprintf("invalid question type %q: must be one of %s",
			q.Type, typeNames()))
	}

	// Multiple choice questions carry 2-4 non-blank choices.
	if q.Type == questions.TypeMultipleChoice {
		switch {
		case len(q.Choices) == 0:
			errs = append(errs, "multiple choice question must have choices")
		case len(q.Choices) < MinChoices || len(q.Choices) > MaxChoices:
			errs = append(errs, fmt.Sprintf("multiple choice question must have between %d and %d choices, got %d",
				MinChoices, MaxChoices, len(q.Choices)))
		}
		for i, choice := range q.Choices {
			if strings.TrimSpace(choice) == "" {
				errs = append(errs, fmt.Sprintf("choice %d is blank", i))
			}
		}
	}

	// Difficulty must be one of Easy, Medium, Hard.
	if strings.TrimSpace(string(q.Difficulty)) != "" && !q.Difficulty.IsValid() {
		errs = append(errs, fmt.Sprintf("invalid difficulty %q: must be one of Easy, Medium, Hard",
			q.Difficulty))
	}

	// Points, when present, must parse as a number greater than zero.
	if q.Points.Present() {
		if v, err := q.Points.Float64(); err != nil || v <= 0 {
			errs = append(errs, fmt.Sprintf("points must be a number greater than 0, got %q", q.Points))
		}
	}

	// Tolerance applies to numerical questions and must be non-negative.
	if q.Tolerance.Present() && q.Type == questions.TypeNumerical {
		if v, err := q.Tolerance.Float64(); err != nil || v < 0 {
			errs = append(errs, fmt.Sprintf("tolerance must be a non-negative number, got %q", q.Tolerance))
		}
	}

	// The correct answer of a multiple choice question is either a letter
	// A-D resolving to an existing choice index, or matches one choice
	// verbatim after trimming.
	if q.Type == questions.TypeMultipleChoice && len(q.Choices) > 0 {
		if msg := checkChoiceAnswer(q); msg != "" {
			errs = append(errs, msg)
		}
	}

	// Declared maximum lengths.
	lengths := []struct {
		name  string
		value string
		max   int
	}{
		{"title", q.Title, MaxTitleLength},
		{"question_text", q.QuestionText, MaxQuestionLength},
		{"topic", q.Topic, MaxTopicLength},
		{"subtopic", q.Subtopic, MaxSubtopicLength},
		{"feedback_correct", q.FeedbackOK, MaxFeedbackLength},
		{"feedback_incorrect", q.FeedbackKO, MaxFeedbackLength},
	}
	for _, l := range lengths {
		if len(l.value) > l.max {
			errs = append(errs, fmt.Sprintf("%s exceeds maximum length of %d characters (%d)",
				l.name, l.max, len(l.value)))
		}
	}

	// Missing feedback is advisory only.
	var warnings []string
	if strings.TrimSpace(q.FeedbackOK) == "" {
		warnings = append(warnings, "feedback_correct not set")
	}
	if strings.TrimSpace(q.FeedbackKO) == "" {
		warnings = append(warnings, "feedback_incorrect not set")
	}

	return Result{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// checkChoiceAnswer validates the correct answer of a multiple choice
// question. Returns an error message, or "" when the answer resolves.
func checkChoiceAnswer(q questions.Question) string {
	answer := strings.TrimSpace(q.Answer.String())
	if answer == "" {
		return "" // Already reported as a missing required field.
	}

	// Letter form: A-D, case-insensitive.
	if len(answer) == 1 {
		upper := strings.ToUpper(answer)
		if upper >= "A" && upper <= "D" {
			idx := int(upper[0] - 'A')
			if idx < len(q.Choices) {
				return ""
			}
			return fmt.Sprintf("correct answer %q does not correspond to any of the %d choices",
				answer, len(q.Choices))
		}
	}

	// Verbatim form: exact match after trimming.
	for _, choice := range q.Choices {
		if strings.TrimSpace(choice) == answer {
			return ""
		}
	}
	return fmt.Sprintf("correct answer %q must be a letter A-D or match one of the choices", answer)
}

func typeNames() string {
	names := make([]string, 0, len(questions.Types()))
	for _, t := range questions.Types() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}
