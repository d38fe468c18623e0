package reconciler

import (
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// options configures a reconciler.
type options struct {
	clone    bool
	onAttach []AttachHook
}

func defaultOptions() *options {
	return &options{}
}

// AttachHook is called after FASTA content is attached to an annotated record.
type AttachHook func(annotated, fasta *sequences.Record)

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithClone makes the reconciler copy an annotated record before attaching
// content to it, leaving the caller's record untouched. By default records
// are updated in place.
func WithClone(enabled bool) Option {
	return func(o *options) error {
		o.clone = enabled
		return nil
	}
}

// WithAttachHook registers fn to run after each attachment.
func WithAttachHook(fn AttachHook) Option {
	return func(o *options) error {
		if fn == nil {
			return &errors.ValidationError{
				Field:   "attach_hook",
				Message: "cannot be nil",
			}
		}
		o.onAttach = append(o.onAttach, fn)
		return nil
	}
}
