// Package questions defines the question record model shared by the
// validation, conflict detection, and merge components. Records are plain
// data: two records with different IDs but identical content are content
// duplicates, not the same entity.
package questions

import (
	"strconv"
	"strings"
)

// Type classifies a question record.
type Type string

const (
	// TypeMultipleChoice is a question with 2-4 answer choices.
	TypeMultipleChoice Type = "multiple_choice"
	// TypeNumerical is a question with a numeric answer and optional tolerance.
	TypeNumerical Type = "numerical"
	// TypeTrueFalse is a true/false question.
	TypeTrueFalse Type = "true_false"
	// TypeFillInMultipleBlanks is a fill-in-the-blanks question.
	TypeFillInMultipleBlanks Type = "fill_in_multiple_blanks"
)

// Types lists every valid question type.
func Types() []Type {
	return []Type{
		TypeMultipleChoice,
		TypeNumerical,
		TypeTrueFalse,
		TypeFillInMultipleBlanks,
	}
}

// IsValid reports whether the type is one of the known question types.
func (t Type) IsValid() bool {
	switch t {
	case TypeMultipleChoice, TypeNumerical, TypeTrueFalse, TypeFillInMultipleBlanks:
		return true
	}
	return false
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// Difficulty is the declared difficulty of a question.
type Difficulty string

const (
	// DifficultyEasy marks an easy question.
	DifficultyEasy Difficulty = "Easy"
	// DifficultyMedium marks a medium question.
	DifficultyMedium Difficulty = "Medium"
	// DifficultyHard marks a hard question.
	DifficultyHard Difficulty = "Hard"
)

// IsValid reports whether the difficulty is one of Easy, Medium, or Hard.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// String returns the string representation of the difficulty.
func (d Difficulty) String() string {
	return string(d)
}

// Question represents a single question record.
//
// IDs are externally assigned strings and are not guaranteed unique across
// collections; uniqueness within a merged collection is the merge engine's
// responsibility. Points and Tolerance are held as Numeric so that values
// arriving as ints, floats, or strings from upstream files normalize to one
// canonical form at the codec boundary.
type Question struct {
	ID           string     `json:"id" yaml:"id"`                                   // Externally assigned identifier
	Type         Type       `json:"type" yaml:"type"`                               // Question type
	Title        string     `json:"title" yaml:"title"`                             // Display title
	QuestionText string     `json:"question_text" yaml:"question_text"`             // The question body
	Choices      []string   `json:"choices,omitempty" yaml:"choices,omitempty"`     // Ordered answer choices (multiple choice only)
	Answer       Scalar     `json:"correct_answer" yaml:"correct_answer"`           // Correct answer, letter A-D or verbatim choice for multiple choice
	Points       Numeric    `json:"points,omitempty" yaml:"points,omitempty"`       // Point value, positive when present
	Tolerance    Numeric    `json:"tolerance,omitempty" yaml:"tolerance,omitempty"` // Accepted deviation, numerical questions only
	FeedbackOK   string     `json:"feedback_correct,omitempty" yaml:"feedback_correct,omitempty"`
	FeedbackKO   string     `json:"feedback_incorrect,omitempty" yaml:"feedback_incorrect,omitempty"`
	Topic        string     `json:"topic" yaml:"topic"`
	Subtopic     string     `json:"subtopic,omitempty" yaml:"subtopic,omitempty"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
}

// NumericID parses the question ID as a base-10 integer. The second return
// value is false for non-numeric IDs, which are treated as absent by the
// sequential conflict heuristic and the renumbering computation.
func (q Question) NumericID() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(q.ID))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ContentKey returns the content identity of the question: its text and
// correct answer. Two records sharing a content key are content duplicates
// regardless of their IDs.
func (q Question) ContentKey() string {
	return q.QuestionText + "\x00" + q.Answer.String()
}
