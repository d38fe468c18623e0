// Package reconciler merges annotated sequence records with sequence-only
// records.
//
// An annotated record whose content is unknown is matched to the FASTA record
// with the same ID. When the declared length equals the FASTA length the FASTA
// residues are attached and that FASTA record leaves the leftover pool. ID and
// length agreement is trusted as content agreement: nothing hashes or aligns
// the residues, so callers that cannot trust their inputs should verify the
// attached sequences themselves.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/logging"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// Reconciler attaches sequence content to annotated records.
type Reconciler interface {
	// Reconcile resolves every annotated record with unknown content against
	// input.Index and aggregates the final record list.
	Reconcile(ctx context.Context, input Input) (*Result, error)
}

// Input is one reconciliation's working set. The reconciler consumes entries
// of Index as it matches them.
type Input struct {
	// Paths are reported in the empty-result error and result metadata.
	Paths []string

	// Annotated records in ingestion order.
	Annotated []*sequences.Record

	// Index of sequence-only records. A nil Index is treated as empty.
	Index *FastaIndex
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	clone    bool
	onAttach []AttachHook
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{clone: options.clone, onAttach: options.onAttach}, nil
}

// reconcileContext holds shared state for one reconciliation.
type reconcileContext struct {
	ctx    context.Context
	index  *FastaIndex
	result *Result
	logger *zerolog.Logger
}

// Reconcile performs reconciliation with clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, input Input) (*Result, error) {
	// Step 1: Initialize context
	rctx := r.initialize(ctx, input)

	// Step 2: Resolve unknown content of annotated records
	annotated, err := r.resolveAll(rctx, input.Annotated)
	if err != nil {
		return nil, err
	}

	// Step 3: Aggregate annotated and leftover records
	return r.aggregate(rctx, annotated)
}

// initialize sets up reconciliation context.
func (r *reconciler) initialize(ctx context.Context, input Input) *reconcileContext {
	index := input.Index
	if index == nil {
		index = NewFastaIndex()
	}

	result := NewResult()
	result.Metadata.Paths = append(result.Metadata.Paths, input.Paths...)
	result.Metadata.Stats.FastaRecords = index.Len()
	result.Metadata.Stats.AnnotatedRecords = len(input.Annotated)

	return &reconcileContext{
		ctx:    ctx,
		index:  index,
		result: result,
		logger: logging.FromContext(ctx),
	}
}

// resolveAll resolves each annotated record in order, stopping at the first
// failure.
func (r *reconciler) resolveAll(rctx *reconcileContext, annotated []*sequences.Record) ([]*sequences.Record, error) {
	out := make([]*sequences.Record, 0, len(annotated))
	for _, rec := range annotated {
		resolved, err := r.resolve(rctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// resolve attaches FASTA content to rec when its content is unknown.
func (r *reconciler) resolve(rctx *reconcileContext, rec *sequences.Record) (*sequences.Record, error) {
	stats := &rctx.result.Metadata.Stats

	if rec.Content.IsKnown() {
		stats.AlreadyKnown++
		return rec, nil
	}

	// the pool check sees only what earlier matches left behind
	if rctx.index.Remaining() == 0 {
		return nil, &errors.MissingSequenceError{ID: rec.ID, Reason: errors.NoSequencePool}
	}

	match, ok := rctx.index.Lookup(rec.ID)
	if !ok {
		return nil, &errors.MissingSequenceError{ID: rec.ID, Reason: errors.IdentifierNotFound}
	}

	if rec.Content.Len() != match.Content.Len() {
		return nil, &errors.LengthMismatchError{
			ID:              rec.ID,
			AnnotatedLength: rec.Content.Len(),
			SequenceLength:  match.Content.Len(),
		}
	}

	if r.clone {
		copied := *rec
		rec = &copied
	}
	rec.Attach(match.Content)
	consumed := rctx.index.Consume(rec.ID)
	stats.Attached++

	logging.FromContext(logging.WithRecord(rctx.ctx, rec.ID)).Debug().
		Str("fasta_path", match.Source.Path).
		Int("length", match.Content.Len()).
		Bool("consumed", consumed).
		Msg("Attached FASTA sequence to annotated record")

	for _, fn := range r.onAttach {
		fn(rec, match)
	}
	return rec, nil
}

// aggregate builds the final record list and rejects an empty one.
func (r *reconciler) aggregate(rctx *reconcileContext, annotated []*sequences.Record) (*Result, error) {
	result := rctx.result
	leftover := rctx.index.Leftover()

	if len(annotated) == 0 && len(leftover) == 0 {
		return nil, &errors.EmptyResultError{Paths: result.Metadata.Paths}
	}

	result.Records = make([]*sequences.Record, 0, len(annotated)+len(leftover))
	result.Records = append(result.Records, annotated...)
	result.Records = append(result.Records, leftover...)
	result.Metadata.Stats.Leftover = len(leftover)
	result.Finalize()

	rctx.logger.Debug().
		Int("annotated", len(annotated)).
		Int("attached", result.Metadata.Stats.Attached).
		Int("leftover", len(leftover)).
		Dur("elapsed", result.Metadata.Duration).
		Msg("Reconciled reference records")

	return result, nil
}
