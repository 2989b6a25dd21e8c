// Package renumber computes conflict-free identifier assignments for an
// incoming question collection. Renumbering never mutates its inputs: it
// returns freshly copied records carrying the new IDs.
package renumber

import (
	"strconv"

	"github.com/agentstation/qbank/pkg/questions"
)

// NextAvailableID returns the smallest non-negative integer strictly
// greater than the maximum numeric ID present in existing. Non-numeric
// IDs are treated as absent; a collection with no numeric IDs (including
// the empty collection) yields 0. The result is floored at 0, so a
// collection whose numeric IDs are all negative also yields 0: assigned
// IDs stay in the natural range, and 0 cannot collide with a negative ID.
func NextAvailableID(existing []questions.Question) int {
	next := 0
	for _, q := range existing {
		if n, ok := q.NumericID(); ok && n >= next {
			next = n + 1
		}
	}
	return next
}

// AutoRenumber reassigns the ID of every incoming record, in original
// order, to consecutive integers starting at NextAvailableID(existing).
// All other fields are left unchanged. The result has zero ID collisions
// against existing by construction; the merge engine re-runs the conflict
// detector to verify that post-condition.
//
// Duplicate IDs within incoming are irrelevant: assignment is positional,
// so the output IDs are unique regardless of the input IDs.
func AutoRenumber(existing, incoming []questions.Question) []questions.Question {
	next := NextAvailableID(existing)
	result := make([]questions.Question, 0, len(incoming))
	for i, q := range incoming {
		cp := questions.Copy(q)
		cp.ID = strconv.Itoa(next + i)
		result = append(result, cp)
	}
	return result
}

// Plan maps each changed incoming ID to its newly assigned ID, in incoming
// order. Records whose ID is unchanged by renumbering are omitted. When
// incoming contains duplicate IDs the map keeps the last assignment, which
// matches how callers display the rename: one line per distinct old ID.
func Plan(existing, incoming []questions.Question) map[string]string {
	next := NextAvailableID(existing)
	plan := make(map[string]string)
	for i, q := range incoming {
		newID := strconv.Itoa(next + i)
		if q.ID != newID {
			plan[q.ID] = newID
		}
	}
	return plan
}
