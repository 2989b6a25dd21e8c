package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/qbank/pkg/conflict"
	"github.com/agentstation/qbank/pkg/errors"
	"github.com/agentstation/qbank/pkg/logging"
	"github.com/agentstation/qbank/pkg/questions"
)

func question(id, text, answer string) questions.Question {
	return questions.Question{
		ID:           id,
		Type:         questions.TypeNumerical,
		Title:        "Q" + id,
		QuestionText: text,
		Answer:       questions.Scalar(answer),
		Points:       "1",
		Topic:        "Math",
		Difficulty:   questions.DifficultyEasy,
	}
}

func bank(first, n int) []questions.Question {
	qs := make([]questions.Question, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%d", first+i)
		qs = append(qs, question(id, fmt.Sprintf("What is %s squared?", id), id))
	}
	return qs
}

// distinctBank builds records whose content never collides with bank's.
func distinctBank(first, n int) []questions.Question {
	qs := make([]questions.Question, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%d", first+i)
		qs = append(qs, question(id, fmt.Sprintf("What is %s cubed?", id), "c"+id))
	}
	return qs
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return New(WithLogger(logging.NewTestLogger(t).Logger))
}

func TestMergeNoConflicts(t *testing.T) {
	existing := bank(0, 3)
	incoming := distinctBank(10, 2)

	result, err := testEngine(t).Merge(existing, incoming, StrategySkipDuplicates, false)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ExistingCount)
	assert.Equal(t, 2, result.NewCount)
	assert.Equal(t, 5, result.FinalCount)
	assert.Empty(t, result.Conflicts)
	require.Len(t, result.Merged, 5)
	assert.Equal(t, "0", result.Merged[0].ID, "existing order preserved")
	assert.Equal(t, "11", result.Merged[4].ID, "incoming appended in order")
}

func TestMergeEmptyIncoming(t *testing.T) {
	existing := bank(0, 4)

	result, err := testEngine(t).Merge(existing, nil, StrategyReject, true)
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 4, result.FinalCount)
	assert.Equal(t, existing, result.Merged)
}

func TestMergeEmptyExisting(t *testing.T) {
	incoming := distinctBank(5, 3)

	result, err := testEngine(t).Merge(nil, incoming, StrategyKeepBothRenumber, true)
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts, "no ID collisions possible against empty existing")
	assert.Equal(t, 3, result.FinalCount)
	assert.False(t, result.Summary.AutoRenumbered, "nothing to renumber")
}

func TestMergeSkipDuplicates(t *testing.T) {
	existing := bank(0, 5)
	incoming := []questions.Question{
		question("2", "some new text", "x"),      // id collision -> dropped
		question("9", "another new text", "y"),   // clean -> kept
		question("10", "What is 3 squared?", "3"), // content duplicate -> dropped
	}

	result, err := testEngine(t).Merge(existing, incoming, StrategySkipDuplicates, false)
	require.NoError(t, err)

	assert.Equal(t, 6, result.FinalCount)
	assert.LessOrEqual(t, result.FinalCount, result.ExistingCount+result.NewCount)
	assert.Equal(t, []string{"2", "10"}, result.Summary.SkippedIDs)
	assert.Equal(t, "9", result.Merged[5].ID)
	// The conflict list still shows everything that was detected.
	assert.Len(t, result.Conflicts, 2)
}

func TestMergeOverwrite(t *testing.T) {
	existing := bank(0, 4)
	replacement := question("2", "replacement text", "r")
	fresh := question("9", "fresh text", "f")

	result, err := testEngine(t).Merge(existing, []questions.Question{replacement, fresh}, StrategyOverwrite, false)
	require.NoError(t, err)

	require.Equal(t, 5, result.FinalCount)
	// The replacement sits where the existing record was.
	assert.Equal(t, "2", result.Merged[2].ID)
	assert.Equal(t, "replacement text", result.Merged[2].QuestionText)
	assert.Equal(t, "9", result.Merged[4].ID)
	assert.Equal(t, []string{"2"}, result.Summary.OverwrittenIDs)
}

func TestMergeOverwriteNoConflictsCountIdentity(t *testing.T) {
	existing := bank(0, 3)
	incoming := distinctBank(10, 4)

	result, err := testEngine(t).Merge(existing, incoming, StrategyOverwrite, false)
	require.NoError(t, err)
	assert.Equal(t, result.ExistingCount+result.NewCount, result.FinalCount)
}

func TestMergeReject(t *testing.T) {
	existing := bank(0, 5)
	incoming := []questions.Question{question("3", "novel text", "n")}

	result, err := testEngine(t).Merge(existing, incoming, StrategyReject, false)
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedConflict(err))

	// No partial output: the full conflict list comes back instead.
	assert.Nil(t, result.Merged)
	assert.Equal(t, 0, result.FinalCount)
	assert.Len(t, result.Conflicts, 1)

	var ucErr *errors.UnresolvedConflictError
	require.ErrorAs(t, err, &ucErr)
	assert.Equal(t, []string{"3"}, ucErr.ConflictIDs)
}

func TestMergeRejectCleanInputs(t *testing.T) {
	result, err := testEngine(t).Merge(bank(0, 3), distinctBank(10, 2), StrategyReject, false)
	require.NoError(t, err)
	assert.Equal(t, 5, result.FinalCount)
}

func TestMergeRejectResolvedByRenumbering(t *testing.T) {
	// Renumbering clears the collisions, so reject has nothing to
	// reject: conflicts_after is the set that matters.
	existing := bank(0, 5)
	incoming := distinctBank(0, 3)

	result, err := testEngine(t).Merge(existing, incoming, StrategyReject, true)
	require.NoError(t, err)
	assert.Equal(t, 8, result.FinalCount)
	assert.True(t, result.Summary.AutoRenumbered)
	assert.NotEmpty(t, result.Conflicts, "the pre-resolution view is preserved")
}

func TestMergeKeepBothRenumber(t *testing.T) {
	existing := bank(0, 5)
	incoming := distinctBank(0, 3)

	result, err := testEngine(t).Merge(existing, incoming, StrategyKeepBothRenumber, true)
	require.NoError(t, err)

	assert.Equal(t, 8, result.FinalCount)
	assert.True(t, result.Summary.AutoRenumbered)
	assert.Equal(t, map[string]string{"0": "5", "1": "6", "2": "7"}, result.Summary.RenumberingInfo)

	ids := make(map[string]bool)
	for _, q := range result.Merged {
		assert.False(t, ids[q.ID], "merged collection has unique ids")
		ids[q.ID] = true
	}
}

func TestMergeKeepBothWithoutRenumberFlag(t *testing.T) {
	// Without the renumber pass this strategy cannot resolve collisions,
	// and it never silently drops records.
	existing := bank(0, 5)
	incoming := distinctBank(0, 3)

	result, err := testEngine(t).Merge(existing, incoming, StrategyKeepBothRenumber, false)
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedConflict(err))
	assert.Nil(t, result.Merged)
}

func TestMergeKeepBothNonNumericCollision(t *testing.T) {
	// Renumbering is gated on the integer heuristic, so a collision on a
	// non-numeric id survives and aborts the merge.
	existing := []questions.Question{question("intro", "a?", "a")}
	incoming := []questions.Question{question("intro", "b?", "b")}

	_, err := testEngine(t).Merge(existing, incoming, StrategyKeepBothRenumber, true)
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedConflict(err))
}

func TestMergeSchemaViolationsReported(t *testing.T) {
	existing := bank(0, 2)
	invalid := questions.Question{ID: "9", Type: "essay"}

	result, err := testEngine(t).Merge(existing, []questions.Question{invalid}, StrategySkipDuplicates, false)
	require.NoError(t, err)

	violations := result.Conflicts.ByType(conflict.TypeSchemaViolation)
	require.Len(t, violations, 1)
	assert.Nil(t, violations[0].Existing)
	// Schema violations are data, not drops: the record still merges
	// under skip-duplicates.
	assert.Equal(t, 3, result.FinalCount)
}

func TestMergeSchemaViolationsAbortReject(t *testing.T) {
	existing := bank(0, 2)
	invalid := questions.Question{ID: "9", Type: "essay"}

	_, err := testEngine(t).Merge(existing, []questions.Question{invalid}, StrategyReject, false)
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedConflict(err))
}

func TestMergeRejectReportsEachIDOnce(t *testing.T) {
	existing := bank(0, 2)
	// Colliding id, distinct content, and schema-invalid (no topic): the
	// record is party to an ID collision and a schema violation at once.
	doubled := question("0", "What is 7 cubed?", "343")
	doubled.Topic = ""

	_, err := testEngine(t).Merge(existing, []questions.Question{doubled}, StrategyReject, false)
	require.Error(t, err)

	var unresolved *errors.UnresolvedConflictError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, []string{"0"}, unresolved.ConflictIDs)
	assert.Equal(t, 1, unresolved.Count)
}

func TestMergeWithoutValidation(t *testing.T) {
	engine := New(WithLogger(logging.NewTestLogger(t).Logger), WithoutValidation())
	invalid := questions.Question{ID: "9", Type: "essay"}

	result, err := engine.Merge(bank(0, 2), []questions.Question{invalid}, StrategyReject, false)
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 3, result.FinalCount)
}

func TestPreviewDoesNotMutateInputs(t *testing.T) {
	existing := bank(0, 25)
	incoming := bank(0, 23)
	existingBefore := questions.CopyAll(existing)
	incomingBefore := questions.CopyAll(incoming)

	engine := testEngine(t)
	for i := 0; i < 3; i++ {
		_, err := engine.Preview(existing, incoming, StrategyKeepBothRenumber, true)
		require.NoError(t, err)
	}

	assert.Equal(t, existingBefore, existing)
	assert.Equal(t, incomingBefore, incoming)
}

func TestPreviewIdempotent(t *testing.T) {
	existing := bank(0, 10)
	incoming := bank(0, 5)

	engine := testEngine(t)
	first, err := engine.Preview(existing, incoming, StrategySkipDuplicates, false)
	require.NoError(t, err)
	second, err := engine.Preview(existing, incoming, StrategySkipDuplicates, false)
	require.NoError(t, err)

	// Structurally identical apart from per-invocation metadata.
	assert.Equal(t, first.Merged, second.Merged)
	assert.Equal(t, first.Conflicts, second.Conflicts)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.FinalCount, second.FinalCount)
	assert.NotEqual(t, first.Metadata.OperationID, second.Metadata.OperationID)
	assert.True(t, second.Metadata.DryRun)
}

// TestReferenceScenario walks the reference sequence end to end: 25
// existing records with ids 0..24 against 23 incoming records with ids
// 0..22.
func TestReferenceScenario(t *testing.T) {
	existing := bank(0, 25)
	incoming := make([]questions.Question, 0, 23)
	for i := 0; i < 23; i++ {
		id := fmt.Sprintf("%d", i)
		incoming = append(incoming, question(id, fmt.Sprintf("Incoming question %s?", id), "i"+id))
	}

	assert.True(t, conflict.HasSequentialIDConflicts(existing, incoming))

	report := conflict.Detect(existing, incoming)
	assert.Len(t, report.IDCollisions(), 23)

	result, err := testEngine(t).Preview(existing, incoming, StrategyKeepBothRenumber, true)
	require.NoError(t, err)

	assert.Equal(t, 25, result.ExistingCount)
	assert.Equal(t, 23, result.NewCount)
	assert.Equal(t, 48, result.FinalCount)
	assert.True(t, result.Summary.AutoRenumbered)
	require.Len(t, result.Summary.RenumberingInfo, 23)
	assert.Equal(t, "25", result.Summary.RenumberingInfo["0"])
	assert.Equal(t, "47", result.Summary.RenumberingInfo["22"])

	// The merged tail carries the renumbered ids 25..47 in original
	// incoming order.
	for i := 0; i < 23; i++ {
		q := result.Merged[25+i]
		assert.Equal(t, fmt.Sprintf("%d", 25+i), q.ID)
		assert.Equal(t, incoming[i].QuestionText, q.QuestionText)
	}

	// Re-running detection after renumbering reports zero conflicts.
	after := conflict.Detect(existing, result.Merged[25:])
	assert.Empty(t, after)
}

func TestMergeCountIdentityKeepBoth(t *testing.T) {
	result, err := testEngine(t).Merge(bank(0, 6), distinctBank(0, 4), StrategyKeepBothRenumber, true)
	require.NoError(t, err)
	assert.Equal(t, result.ExistingCount+result.NewCount, result.FinalCount)
}

func TestResultString(t *testing.T) {
	result, err := testEngine(t).Preview(bank(0, 2), distinctBank(10, 1), StrategySkipDuplicates, false)
	require.NoError(t, err)
	s := result.String()
	assert.Contains(t, s, "(preview)")
	assert.Contains(t, s, "2 existing + 1 incoming -> 3 records")
}
