// Package qbank manages question bank collections with validation,
// conflict detection, and strategy-driven merging.
//
// The Bank type wraps a question collection and exposes the full
// reconciliation workflow:
//
//	bank, err := qbank.New(qbank.WithFile("existing.yaml"))
//	if err != nil {
//		return err
//	}
//	result, err := bank.Merge(incoming, merge.StrategyKeepBothRenumber)
//	if err != nil {
//		return err
//	}
//	if err := bank.Save("existing.yaml"); err != nil {
//		return err
//	}
//
// Lower-level packages under pkg/ remain usable on their own when a
// caller only needs one stage of the workflow.
package qbank

import (
	"sync"

	"github.com/agentstation/qbank/pkg/conflict"
	"github.com/agentstation/qbank/pkg/errors"
	"github.com/agentstation/qbank/pkg/merge"
	"github.com/agentstation/qbank/pkg/questions"
	"github.com/agentstation/qbank/pkg/renumber"
	"github.com/agentstation/qbank/pkg/validate"
)

// Bank manages a question collection through the reconciliation workflow.
type Bank interface {
	// Questions returns a copy of the current collection.
	Questions() []questions.Question

	// Len returns the number of questions in the collection.
	Len() int

	// NextAvailableID returns the id the next question would receive.
	NextAvailableID() int

	// Validate checks every question against the schema rules.
	Validate() (*validate.Report, error)

	// Conflicts reports the conflicts an incoming collection would
	// raise against the current one.
	Conflicts(incoming []questions.Question) conflict.Report

	// Merge reconciles an incoming collection into the bank under the
	// given strategy. On success the bank holds the merged collection.
	Merge(incoming []questions.Question, strategy merge.Strategy) (*merge.Result, error)

	// Preview reports what Merge would do without changing the bank.
	Preview(incoming []questions.Question, strategy merge.Strategy) (*merge.Result, error)

	// Save writes the current collection to the given path.
	Save(path string) error
}

// Compile-time interface check to ensure proper implementation.
var _ Bank = (*bank)(nil)

// bank is the internal implementation of the Bank interface.
type bank struct {
	mu        sync.RWMutex
	questions []questions.Question
	config    *config
	engine    *merge.Engine
}

// New creates a new Bank instance with the given options.
func New(opts ...Option) (Bank, error) {
	b := &bank{
		config: defaultConfig(),
	}

	if err := b.options(opts...); err != nil {
		return nil, errors.WrapValidation("options", err)
	}

	switch {
	case b.config.path != "":
		loaded, err := questions.Load(b.config.path)
		if err != nil {
			return nil, err
		}
		b.questions = loaded
	case b.config.initial != nil:
		b.questions = questions.CopyAll(b.config.initial)
	default:
		b.questions = []questions.Question{}
	}

	engineOpts := []merge.Option{merge.WithLogger(b.config.logger)}
	if !b.config.validation {
		engineOpts = append(engineOpts, merge.WithoutValidation())
	}
	b.engine = merge.New(engineOpts...)

	return b, nil
}

// options applies the given options to the bank's config.
func (b *bank) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(b.config); err != nil {
			return err
		}
	}
	return nil
}

// Questions returns a copy of the current collection.
func (b *bank) Questions() []questions.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return questions.CopyAll(b.questions)
}

// Len returns the number of questions in the collection.
func (b *bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.questions)
}

// NextAvailableID returns the id the next question would receive.
func (b *bank) NextAvailableID() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return renumber.NextAvailableID(b.questions)
}

// Validate checks every question against the schema rules.
func (b *bank) Validate() (*validate.Report, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return validate.Collection(b.questions)
}

// Conflicts reports the conflicts an incoming collection would raise
// against the current one.
func (b *bank) Conflicts(incoming []questions.Question) conflict.Report {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return conflict.Detect(b.questions, incoming)
}

// Merge reconciles an incoming collection into the bank under the given
// strategy. On success the bank holds the merged collection.
func (b *bank) Merge(incoming []questions.Question, strategy merge.Strategy) (*merge.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	result, err := b.engine.Merge(b.questions, incoming, strategy, b.config.renumber)
	if err != nil {
		return result, err
	}

	b.questions = result.Merged
	return result, nil
}

// Preview reports what Merge would do without changing the bank.
func (b *bank) Preview(incoming []questions.Question, strategy merge.Strategy) (*merge.Result, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.engine.Preview(b.questions, incoming, strategy, b.config.renumber)
}

// Save writes the current collection to the given path.
func (b *bank) Save(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if path == "" {
		path = b.config.path
	}
	if path == "" {
		return &errors.ConfigError{
			Component: "bank",
			Message:   "no save path configured",
		}
	}
	return questions.Save(path, b.questions)
}
