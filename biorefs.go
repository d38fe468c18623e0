// Package biorefs loads genomic reference files into one consistent set of
// sequence records.
//
// FASTA files supply sequence-only records. GenBank and GFF files supply
// annotated records that may lack residues; those are filled in from the
// FASTA record with the same ID and length. The combined result lists the
// annotated records first, then every FASTA record that was not used.
package biorefs

import (
	"context"
	"fmt"

	"github.com/agentstation/biorefs/pkg/parsers"
	"github.com/agentstation/biorefs/pkg/parsers/fasta"
	"github.com/agentstation/biorefs/pkg/parsers/genbank"
	"github.com/agentstation/biorefs/pkg/parsers/gff"
	"github.com/agentstation/biorefs/pkg/reconciler"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// Loader loads reference files.
type Loader interface {
	// Load parses and reconciles the reference files at paths.
	Load(ctx context.Context, paths ...string) (*reconciler.Result, error)

	// Classify validates paths and reports the format of each.
	Classify(paths ...string) ([]sequences.ReferenceFile, error)

	// OnFileParsed registers a callback for each successfully parsed file
	OnFileParsed(FileParsedHook)

	// OnSequenceAttached registers a callback for each attached sequence
	OnSequenceAttached(SequenceAttachedHook)
}

// loader is the internal implementation of the Loader interface
type loader struct {
	config   *config
	registry *parsers.Registry
	hooks    *hooks
}

// New creates a new Loader with the given options
func New(opts ...Option) (Loader, error) {
	l := &loader{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := l.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	l.registry = parsers.NewRegistry(fasta.New(), genbank.New(), gff.New())
	for _, p := range l.config.parsers {
		l.registry.Register(p)
	}
	return l, nil
}

// LoadReferences loads paths with a default Loader and returns the records.
func LoadReferences(ctx context.Context, paths ...string) ([]*sequences.Record, error) {
	l, err := New()
	if err != nil {
		return nil, err
	}
	result, err := l.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// OnFileParsed registers a callback for each successfully parsed file
func (l *loader) OnFileParsed(fn FileParsedHook) {
	l.hooks.OnFileParsed(fn)
}

// OnSequenceAttached registers a callback for each attached sequence
func (l *loader) OnSequenceAttached(fn SequenceAttachedHook) {
	l.hooks.OnSequenceAttached(fn)
}
