package conflict

import (
	"fmt"

	"github.com/agentstation/qbank/pkg/questions"
)

// Detect compares an incoming collection against an existing one and
// returns every ID collision and content duplicate, ordered by incoming
// record position. Exactly one ID_COLLISION is produced per colliding
// incoming record, even when several incoming records share the same
// colliding ID. Content duplicates are orthogonal: a record can carry both
// conflict kinds. Neither input is mutated.
//
// Lookup is index-based, so detection runs in O(n+m) over the two
// collections.
func Detect(existing, incoming []questions.Question) Report {
	// Index existing records by ID and by content key. First occurrence
	// wins so Details reports a stable counterpart.
	byID := make(map[string]*questions.Question, len(existing))
	byContent := make(map[string]*questions.Question, len(existing))
	for i := range existing {
		q := &existing[i]
		if _, ok := byID[q.ID]; !ok {
			byID[q.ID] = q
		}
		if q.QuestionText != "" {
			if _, ok := byContent[q.ContentKey()]; !ok {
				byContent[q.ContentKey()] = q
			}
		}
	}

	var report Report
	for i, q := range incoming {
		if hit, ok := byID[q.ID]; ok {
			existingCopy := questions.Copy(*hit)
			report = append(report, Conflict{
				Type:     TypeIDCollision,
				Index:    i,
				Incoming: questions.Copy(q),
				Existing: &existingCopy,
				Details: fmt.Sprintf("incoming question %q collides with existing question %q on id %q",
					q.Title, hit.Title, q.ID),
			})
		}
		// Content duplicates fire across question types: the content key
		// (text + answer) is well defined even when choices is empty.
		// Records with no question text are skipped; they have no content
		// identity to collide on.
		if hit, ok := byContent[q.ContentKey()]; ok && q.QuestionText != "" {
			existingCopy := questions.Copy(*hit)
			report = append(report, Conflict{
				Type:     TypeContentDuplicate,
				Index:    i,
				Incoming: questions.Copy(q),
				Existing: &existingCopy,
				Details: fmt.Sprintf("incoming question %q duplicates the content of existing question %q (id %q)",
					q.Title, hit.Title, hit.ID),
			})
		}
	}

	return report
}

// HasSequentialIDConflicts reports whether the integer-valued IDs of the
// two collections intersect. This is a coarse heuristic used only to
// decide whether renumbering is worth attempting; it never replaces the
// exact per-record scan in Detect.
func HasSequentialIDConflicts(existing, incoming []questions.Question) bool {
	existingIDs := make(map[int]bool, len(existing))
	for _, q := range existing {
		if n, ok := q.NumericID(); ok {
			existingIDs[n] = true
		}
	}
	if len(existingIDs) == 0 {
		return false
	}
	for _, q := range incoming {
		if n, ok := q.NumericID(); ok && existingIDs[n] {
			return true
		}
	}
	return false
}
