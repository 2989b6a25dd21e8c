package merge

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/qbank/pkg/conflict"
	"github.com/agentstation/qbank/pkg/questions"
)

// Summary carries strategy-specific annotations about a merge.
type Summary struct {
	// AutoRenumbered is true when the renumbering pass ran.
	AutoRenumbered bool `json:"auto_renumbered" yaml:"auto_renumbered"`

	// RenumberingInfo maps each changed incoming ID to its new ID.
	RenumberingInfo map[string]string `json:"renumbering_info,omitempty" yaml:"renumbering_info,omitempty"`

	// SkippedIDs lists the IDs of incoming records dropped by the
	// skip-duplicates strategy, in incoming order.
	SkippedIDs []string `json:"skipped_ids,omitempty" yaml:"skipped_ids,omitempty"`

	// OverwrittenIDs lists the IDs of existing records replaced in place
	// by the overwrite strategy, in existing order.
	OverwrittenIDs []string `json:"overwritten_ids,omitempty" yaml:"overwritten_ids,omitempty"`
}

// Metadata describes one merge invocation.
type Metadata struct {
	OperationID string        `json:"operation_id" yaml:"operation_id"`
	Strategy    Strategy      `json:"-" yaml:"-"`
	Renumber    bool          `json:"renumber" yaml:"renumber"`
	DryRun      bool          `json:"dry_run" yaml:"dry_run"`
	StartTime   time.Time     `json:"start_time" yaml:"start_time"`
	EndTime     time.Time     `json:"end_time" yaml:"end_time"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// Result is the outcome of a merge or preview. A preview is structurally
// identical to a committed result; the distinction is purely behavioral
// (no caller-visible state is ever touched either way; the engine holds no
// storage).
type Result struct {
	// ExistingCount is the size of the existing collection.
	ExistingCount int `json:"existing_count" yaml:"existing_count"`

	// NewCount is the size of the incoming collection before any drops.
	NewCount int `json:"new_count" yaml:"new_count"`

	// FinalCount is the size of the merged collection; zero when the
	// merge aborted.
	FinalCount int `json:"final_count" yaml:"final_count"`

	// Merged is the final collection: existing order first, then resolved
	// incoming order, except where overwrite replaced in place. Nil when
	// the merge aborted.
	Merged []questions.Question `json:"merged,omitempty" yaml:"merged,omitempty"`

	// Conflicts is always the pre-resolution view, so callers can see
	// what would have happened without the chosen strategy.
	Conflicts conflict.Report `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`

	// Summary carries strategy-specific annotations.
	Summary Summary `json:"merge_summary" yaml:"merge_summary"`

	// Metadata describes the invocation.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// HasConflicts reports whether any conflict was detected before
// resolution.
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Aborted reports whether the merge produced no merged collection.
func (r *Result) Aborted() bool {
	return r.Merged == nil
}

// String returns a human-readable summary of the result.
func (r *Result) String() string {
	var b strings.Builder
	if r.Metadata.DryRun {
		b.WriteString("(preview) ")
	}
	if r.Aborted() {
		fmt.Fprintf(&b, "merge aborted: %s", r.Conflicts.Summary())
		return b.String()
	}
	fmt.Fprintf(&b, "%d existing + %d incoming -> %d records", r.ExistingCount, r.NewCount, r.FinalCount)
	if r.HasConflicts() {
		fmt.Fprintf(&b, "; %s", r.Conflicts.Summary())
	}
	if r.Summary.AutoRenumbered {
		fmt.Fprintf(&b, "; %d records renumbered", len(r.Summary.RenumberingInfo))
	}
	if len(r.Summary.SkippedIDs) > 0 {
		fmt.Fprintf(&b, "; %d records skipped", len(r.Summary.SkippedIDs))
	}
	if len(r.Summary.OverwrittenIDs) > 0 {
		fmt.Fprintf(&b, "; %d records overwritten", len(r.Summary.OverwrittenIDs))
	}
	return b.String()
}
