package biorefs

import (
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/parsers"
	"github.com/agentstation/biorefs/pkg/reconciler"
)

// config holds Loader settings
type config struct {
	parsers           []parsers.Parser
	reconcilerOptions []reconciler.Option
}

func defaultConfig() *config {
	return &config{}
}

// Option is a function that configures a Loader
type Option func(*config) error

// options applies the given options to the loader
func (l *loader) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(l.config); err != nil {
			return err
		}
	}
	return nil
}

// WithParser replaces the built-in parser for p's format
func WithParser(p parsers.Parser) Option {
	return func(c *config) error {
		if p == nil {
			return &errors.ValidationError{
				Field:   "parser",
				Message: "cannot be nil",
			}
		}
		c.parsers = append(c.parsers, p)
		return nil
	}
}

// WithReconcilerOptions passes options through to the reconciler
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(c *config) error {
		c.reconcilerOptions = append(c.reconcilerOptions, opts...)
		return nil
	}
}
