package qbank

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/qbank/pkg/errors"
	"github.com/agentstation/qbank/pkg/logging"
	"github.com/agentstation/qbank/pkg/questions"
)

// Option is a function that configures a Bank instance.
type Option func(*config) error

// config holds the configurable state of a Bank.
type config struct {
	path       string
	initial    []questions.Question
	renumber   bool
	validation bool
	logger     *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		validation: true,
		logger:     logging.Default(),
	}
}

// WithFile loads the initial collection from the given path. The path is
// also the default target for Save.
func WithFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("path", path, "must not be empty")
		}
		c.path = path
		return nil
	}
}

// WithQuestions seeds the bank with a copy of the given collection.
// Ignored when WithFile is also set.
func WithQuestions(qs []questions.Question) Option {
	return func(c *config) error {
		c.initial = qs
		return nil
	}
}

// WithRenumber configures whether merges may renumber incoming records
// when their ids collide with sequential existing ids.
func WithRenumber(enabled bool) Option {
	return func(c *config) error {
		c.renumber = enabled
		return nil
	}
}

// WithoutValidation disables schema validation during merges.
func WithoutValidation() Option {
	return func(c *config) error {
		c.validation = false
		return nil
	}
}

// WithLogger sets the logger used by the bank's merge engine.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "must not be nil")
		}
		c.logger = logger
		return nil
	}
}
