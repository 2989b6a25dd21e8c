package validate

import (
	"fmt"
	"strings"

	"github.com/agentstation/qbank/pkg/errors"
	"github.com/agentstation/qbank/pkg/questions"
)

// Entry is the validation outcome for one record within a collection,
// preserving its position in the input.
type Entry struct {
	Index    int      `json:"index" yaml:"index"`
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Report aggregates validation results over a collection.
type Report struct {
	Total        int     `json:"total" yaml:"total"`
	ValidCount   int     `json:"valid_count" yaml:"valid_count"`
	InvalidCount int     `json:"invalid_count" yaml:"invalid_count"`
	SuccessRate  float64 `json:"success_rate" yaml:"success_rate"`
	Questions    []Entry `json:"question_results" yaml:"question_results"`
}

// Collection validates every record in input order. An empty collection is
// a top-level failure, not a zero division.
func Collection(records []questions.Question) (*Report, error) {
	if len(records) == 0 {
		return nil, errors.ErrEmptyCollection
	}

	report := &Report{
		Total:     len(records),
		Questions: make([]Entry, 0, len(records)),
	}

	for i, q := range records {
		result := Record(q)
		if result.Valid {
			report.ValidCount++
		} else {
			report.InvalidCount++
		}
		report.Questions = append(report.Questions, Entry{
			Index:    i,
			ID:       q.ID,
			Title:    q.Title,
			Valid:    result.Valid,
			Errors:   result.Errors,
			Warnings: result.Warnings,
		})
	}

	report.SuccessRate = float64(report.ValidCount) / float64(report.Total) * 100

	return report, nil
}

// AllValid reports whether every record in the report passed.
func (r *Report) AllValid() bool {
	return r.InvalidCount == 0
}

// Summary returns a human-readable summary of the report.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d records valid (%.1f%%)", r.ValidCount, r.Total, r.SuccessRate)
	if r.InvalidCount > 0 {
		fmt.Fprintf(&b, ", %d invalid", r.InvalidCount)
	}
	return b.String()
}
