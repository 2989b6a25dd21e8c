package merge

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/qbank/pkg/errors"
)

// Strategy is the closed set of merge resolution policies. A strategy is
// chosen once per merge invocation and applies uniformly to every record;
// the engine dispatches on it with an exhaustive switch so a new policy is
// a compile-time-checked change.
type Strategy int

const (
	// StrategySkipDuplicates drops incoming records that collide and
	// keeps the rest.
	StrategySkipDuplicates Strategy = iota
	// StrategyOverwrite replaces the existing record in place on ID
	// collision; non-colliding incoming records are appended.
	StrategyOverwrite
	// StrategyKeepBothRenumber renumbers incoming records to avoid all
	// ID collisions; it never silently drops records.
	StrategyKeepBothRenumber
	// StrategyReject aborts the whole merge if any conflict exists.
	StrategyReject
)

// String returns the canonical identifier of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySkipDuplicates:
		return "skip-duplicates"
	case StrategyOverwrite:
		return "overwrite"
	case StrategyKeepBothRenumber:
		return "keep-both-renumber"
	case StrategyReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Name returns a display name for the strategy, e.g. "Keep Both Renumber".
func (s Strategy) Name() string {
	return cases.Title(language.English).String(strings.ReplaceAll(s.String(), "-", " "))
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{
		StrategySkipDuplicates,
		StrategyOverwrite,
		StrategyKeepBothRenumber,
		StrategyReject,
	}
}

// ParseStrategy converts a textual strategy name to a Strategy. Both the
// canonical hyphenated form and the upper-snake form used by upstream
// tools (e.g. SKIP_DUPLICATES) are accepted.
func ParseStrategy(s string) (Strategy, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for _, strategy := range Strategies() {
		if normalized == strategy.String() {
			return strategy, nil
		}
	}
	return 0, errors.NewValidationError("strategy", s, "unknown merge strategy")
}
