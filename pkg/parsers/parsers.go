// Package parsers defines the record parser contract and a registry mapping
// reference formats to parser implementations.
package parsers

import (
	"context"
	stderrors "errors"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/logging"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// Parser turns one reference file into ordered sequence records.
type Parser interface {
	// Name identifies the parser in error messages.
	Name() string
	// Format is the reference format the parser reads.
	Format() sequences.Format
	// Parse reads every record in path, in file order.
	Parse(ctx context.Context, path string) ([]*sequences.Record, error)
}

// Registry maps formats to parsers.
type Registry struct {
	parsers map[sequences.Format]Parser
}

// NewRegistry creates a registry holding the given parsers.
func NewRegistry(ps ...Parser) *Registry {
	r := &Registry{parsers: make(map[sequences.Format]Parser, len(ps))}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

// Register adds p, replacing any parser for the same format.
func (r *Registry) Register(p Parser) {
	r.parsers[p.Format()] = p
}

// Get returns the parser for format.
func (r *Registry) Get(format sequences.Format) (Parser, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, errors.NewNotFoundError("parser", format.String())
	}
	return p, nil
}

// Run parses file with p and enforces the parser contract: a file must yield
// at least one record, and failures are reported as ParserFailureError.
// Every returned record has its Source set to file.
func Run(ctx context.Context, p Parser, file sequences.ReferenceFile) ([]*sequences.Record, error) {
	logger := logging.FromContext(ctx)

	records, err := p.Parse(ctx, file.Path)
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.Debug().Err(err).Str("parser", p.Name()).Msg("Parser failed")
		return nil, errors.NewParserFailureError(file.Format.String(), p.Name(), file.Path, err)
	}
	if len(records) == 0 {
		return nil, &errors.EmptyParseError{
			Format: file.Format.String(),
			Parser: p.Name(),
			Path:   file.Path,
		}
	}

	for _, rec := range records {
		rec.Source = file
	}
	logger.Debug().
		Str("parser", p.Name()).
		Int("records", len(records)).
		Msg("Parsed reference file")
	return records, nil
}
