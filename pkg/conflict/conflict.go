// Package conflict implements collision detection between an existing
// question collection and an incoming one. Detection is a pure function of
// its two arguments: conflicts are computed fresh on every pass, never
// mutated, and re-running after a renumbering pass reflects only the new
// state.
package conflict

import (
	"fmt"
	"strings"

	"github.com/agentstation/qbank/pkg/questions"
)

// Type classifies a detected conflict.
type Type string

const (
	// TypeIDCollision indicates an incoming record whose ID equals an
	// existing record's ID under exact string comparison.
	TypeIDCollision Type = "ID_COLLISION"
	// TypeContentDuplicate indicates an incoming record whose question
	// text and correct answer both match an existing record's, regardless
	// of ID.
	TypeContentDuplicate Type = "CONTENT_DUPLICATE"
	// TypeSchemaViolation indicates an incoming record that fails schema
	// validation. Produced by the merge engine from validator output, not
	// by the detector itself.
	TypeSchemaViolation Type = "SCHEMA_VIOLATION"
)

// String returns the string representation of the conflict type.
func (t Type) String() string {
	return string(t)
}

// Conflict describes one detected collision between an incoming record and
// the collection it is being merged into.
type Conflict struct {
	Type Type `json:"conflict_type" yaml:"conflict_type"`

	// Index is the position of the incoming record in its collection.
	// It identifies the record even when incoming IDs are not unique.
	Index int `json:"incoming_index" yaml:"incoming_index"`

	// Incoming is a copy of the colliding incoming record.
	Incoming questions.Question `json:"incoming" yaml:"incoming"`

	// Existing is a copy of the collided existing record; nil for schema
	// violations, which involve no existing record.
	Existing *questions.Question `json:"existing,omitempty" yaml:"existing,omitempty"`

	// Details is a human-readable explanation of the collision.
	Details string `json:"details" yaml:"details"`
}

// Report is an ordered list of conflicts with filtering helpers.
type Report []Conflict

// ByType returns the conflicts of the given type, preserving order.
func (r Report) ByType(t Type) Report {
	var out Report
	for _, c := range r {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// IDCollisions returns only the ID collision conflicts.
func (r Report) IDCollisions() Report {
	return r.ByType(TypeIDCollision)
}

// HasIDCollisions reports whether any ID collision was detected.
func (r Report) HasIDCollisions() bool {
	for _, c := range r {
		if c.Type == TypeIDCollision {
			return true
		}
	}
	return false
}

// IncomingIndexes returns the set of incoming record positions that appear
// in the report, restricted to the given types (all types when none given).
func (r Report) IncomingIndexes(types ...Type) map[int]bool {
	want := make(map[Type]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	out := make(map[int]bool)
	for _, c := range r {
		if len(types) == 0 || want[c.Type] {
			out[c.Index] = true
		}
	}
	return out
}

// IncomingIDs returns the IDs of the incoming records in the report, in
// order, one entry per conflict.
func (r Report) IncomingIDs() []string {
	ids := make([]string, 0, len(r))
	for _, c := range r {
		ids = append(ids, c.Incoming.ID)
	}
	return ids
}

// Summary returns a human-readable one-line summary of the report.
func (r Report) Summary() string {
	if len(r) == 0 {
		return "no conflicts detected"
	}
	counts := make(map[Type]int)
	for _, c := range r {
		counts[c.Type]++
	}
	var parts []string
	for _, t := range []Type{TypeIDCollision, TypeContentDuplicate, TypeSchemaViolation} {
		if counts[t] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[t], t))
		}
	}
	return fmt.Sprintf("%d conflicts (%s)", len(r), strings.Join(parts, ", "))
}
