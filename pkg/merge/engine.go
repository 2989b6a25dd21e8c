// Package merge orchestrates conflict detection, optional renumbering,
// strategy-based resolution, and result assembly over two question
// collections. The engine is stateless and purely synchronous: every
// operation is a function of its inputs and returns a freshly constructed
// result, and neither input collection is ever mutated in place.
package merge

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/qbank/pkg/conflict"
	"github.com/agentstation/qbank/pkg/errors"
	"github.com/agentstation/qbank/pkg/logging"
	"github.com/agentstation/qbank/pkg/questions"
	"github.com/agentstation/qbank/pkg/renumber"
	"github.com/agentstation/qbank/pkg/validate"
)

// Engine performs merges between question collections.
type Engine struct {
	logger   *zerolog.Logger
	validate bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithoutValidation disables the schema gate over incoming records.
// Schema violations then no longer appear in the conflict report, and the
// reject strategy no longer aborts on them.
func WithoutValidation() Option {
	return func(e *Engine) {
		e.validate = false
	}
}

// New creates a merge engine. By default it validates incoming records and
// logs through the default logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   logging.Default(),
		validate: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Merge merges incoming into existing under the given strategy. When
// doRenumber is set and the sequential-ID heuristic fires, incoming
// records are renumbered before resolution.
//
// The engine holds no storage: callers committing the merge copy the
// result's Merged collection into their own state. The inputs are never
// mutated either way.
func Merge(existing, incoming []questions.Question, strategy Strategy, doRenumber bool) (*Result, error) {
	return New().Merge(existing, incoming, strategy, doRenumber)
}

// Preview computes the same result as Merge without committing anything.
// Because the engine never mutates its inputs, the distinction from Merge
// is behavioral: the result is marked as a dry run and callers treat it as
// read-only.
func Preview(existing, incoming []questions.Question, strategy Strategy, doRenumber bool) (*Result, error) {
	return New().Preview(existing, incoming, strategy, doRenumber)
}

// Merge merges incoming into existing under the given strategy.
func (e *Engine) Merge(existing, incoming []questions.Question, strategy Strategy, doRenumber bool) (*Result, error) {
	return e.run(existing, incoming, strategy, doRenumber, false)
}

// Preview runs the merge computation in dry-run mode.
func (e *Engine) Preview(existing, incoming []questions.Question, strategy Strategy, doRenumber bool) (*Result, error) {
	return e.run(existing, incoming, strategy, doRenumber, true)
}

func (e *Engine) run(existing, incoming []questions.Question, strategy Strategy, doRenumber, dryRun bool) (*Result, error) {
	start := time.Now()

	// Work on deep copies throughout. External callers may hold
	// references to both collections across retries, filter changes, and
	// undo operations.
	existing = questions.CopyAll(existing)
	incoming = questions.CopyAll(incoming)

	result := &Result{
		ExistingCount: len(existing),
		NewCount:      len(incoming),
		Metadata: Metadata{
			OperationID: uuid.NewString(),
			Strategy:    strategy,
			Renumber:    doRenumber,
			DryRun:      dryRun,
			StartTime:   start,
		},
	}
	defer func() {
		result.Metadata.EndTime = time.Now()
		result.Metadata.Duration = result.Metadata.EndTime.Sub(start)
	}()

	detected := conflict.Detect(existing, incoming)
	schema := e.schemaConflicts(incoming)

	// Conflicts always carries the pre-resolution view, so callers can
	// see what would have happened without the chosen strategy.
	result.Conflicts = append(append(conflict.Report{}, detected...), schema...)

	e.logger.Debug().
		Str("operation_id", result.Metadata.OperationID).
		Str("strategy", strategy.String()).
		Int("existing", len(existing)).
		Int("incoming", len(incoming)).
		Int("id_collisions", len(detected.IDCollisions())).
		Int("schema_violations", len(schema)).
		Msg("Detected conflicts")

	// Renumbering runs only when requested and the integer-ID heuristic
	// signals overlap. The detector re-runs afterwards; any surviving ID
	// collision means the renumberer's uniqueness guarantee failed, which
	// is a defect in the core, never an expected outcome.
	resolved := incoming
	effective := detected
	if doRenumber && conflict.HasSequentialIDConflicts(existing, incoming) {
		plan := renumber.Plan(existing, incoming)
		resolved = renumber.AutoRenumber(existing, incoming)
		effective = conflict.Detect(existing, resolved)
		if effective.HasIDCollisions() {
			err := errors.NewInvariantError("renumber",
				"auto-renumbering left ID collisions against the existing collection")
			e.logger.Error().Err(err).Msg("Renumbering post-condition failed")
			return result, err
		}
		result.Summary.AutoRenumbered = true
		result.Summary.RenumberingInfo = plan
		e.logger.Debug().Int("renumbered", len(plan)).Msg("Auto-renumbered incoming records")
	}

	var final []questions.Question
	switch strategy {
	case StrategySkipDuplicates:
		drop := effective.IncomingIndexes(conflict.TypeIDCollision, conflict.TypeContentDuplicate)
		final = make([]questions.Question, 0, len(existing)+len(resolved))
		final = append(final, existing...)
		for i, q := range resolved {
			if drop[i] {
				result.Summary.SkippedIDs = append(result.Summary.SkippedIDs, q.ID)
				continue
			}
			final = append(final, q)
		}

	case StrategyOverwrite:
		final = overwrite(existing, resolved, effective, result)

	case StrategyKeepBothRenumber:
		// This strategy never drops records: any ID collision surviving
		// resolution aborts the merge with the full conflict list.
		if effective.HasIDCollisions() {
			err := errors.NewUnresolvedConflictError(strategy.String(),
				uniqueIDs(effective.IDCollisions().IncomingIDs()))
			e.logger.Warn().Err(err).Msg("Merge aborted")
			return result, err
		}
		final = make([]questions.Question, 0, len(existing)+len(resolved))
		final = append(append(final, existing...), resolved...)

	case StrategyReject:
		if len(effective)+len(schema) > 0 {
			// A record can appear in several conflicts at once, e.g. an
			// ID collision that also fails schema validation; report its
			// id once.
			ids := uniqueIDs(append(effective.IncomingIDs(), schema.IncomingIDs()...))
			err := errors.NewUnresolvedConflictError(strategy.String(), ids)
			e.logger.Warn().Err(err).Msg("Merge rejected")
			return result, err
		}
		final = make([]questions.Question, 0, len(existing)+len(resolved))
		final = append(append(final, existing...), resolved...)

	default:
		return result, errors.NewValidationError("strategy", strategy, "unknown merge strategy")
	}

	result.Merged = final
	result.FinalCount = len(final)

	e.logger.Info().
		Str("operation_id", result.Metadata.OperationID).
		Str("strategy", strategy.String()).
		Bool("dry_run", dryRun).
		Int("final", result.FinalCount).
		Msg("Merge complete")

	return result, nil
}

// uniqueIDs drops repeated ids, preserving first-occurrence order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// overwrite builds the final collection for the overwrite strategy. Each
// existing record with a colliding ID is replaced in place; when several
// incoming records share one colliding ID the last one wins, matching
// last-write semantics. Remaining incoming records are appended in order.
func overwrite(existing, resolved []questions.Question, effective conflict.Report, result *Result) []questions.Question {
	replacement := make(map[string]int) // colliding ID -> incoming index, last wins
	consumed := make(map[int]bool)
	for _, c := range effective.IDCollisions() {
		replacement[c.Incoming.ID] = c.Index
		consumed[c.Index] = true
	}

	final := make([]questions.Question, 0, len(existing)+len(resolved))
	for _, q := range existing {
		if idx, ok := replacement[q.ID]; ok {
			final = append(final, resolved[idx])
			result.Summary.OverwrittenIDs = append(result.Summary.OverwrittenIDs, q.ID)
			continue
		}
		final = append(final, q)
	}
	for i, q := range resolved {
		if consumed[i] {
			continue
		}
		final = append(final, q)
	}
	return final
}

// schemaConflicts runs the validator over incoming records and converts
// failures into SCHEMA_VIOLATION conflicts. Validation failures are
// reported as data; only the reject strategy turns them into an abort.
func (e *Engine) schemaConflicts(incoming []questions.Question) conflict.Report {
	if !e.validate {
		return nil
	}
	var report conflict.Report
	for i, q := range incoming {
		res := validate.Record(q)
		if res.Valid {
			continue
		}
		report = append(report, conflict.Conflict{
			Type:     conflict.TypeSchemaViolation,
			Index:    i,
			Incoming: questions.Copy(q),
			Details: fmt.Sprintf("incoming question %q fails schema validation: %s",
				q.Title, strings.Join(res.Errors, "; ")),
		})
	}
	return report
}
