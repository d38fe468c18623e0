package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/biorefs/pkg/sequences"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Records are the annotated records followed by the leftover
	// sequence-only records, each group in ingestion order.
	Records []*sequences.Record

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Paths are the reference files the records came from
	Paths []string

	// Statistics about the reconciliation
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	// FilesByFormat counts input files per format name
	FilesByFormat map[string]int

	// FastaRecords is the size of the sequence-only pool before matching
	FastaRecords int

	// AnnotatedRecords is the number of annotated records
	AnnotatedRecords int

	// AlreadyKnown counts annotated records that carried their own sequence
	AlreadyKnown int

	// Attached counts annotated records that received FASTA content
	Attached int

	// Leftover counts sequence-only records never consumed
	Leftover int

	TotalTimeMs int64
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Records: []*sequences.Record{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Paths:     []string{},
			Stats: ResultStatistics{
				FilesByFormat: make(map[string]int),
			},
		},
	}
}

// Annotated returns the annotated part of Records.
func (r *Result) Annotated() []*sequences.Record {
	return r.Records[:r.Metadata.Stats.AnnotatedRecords]
}

// Leftover returns the unconsumed sequence-only part of Records.
func (r *Result) Leftover() []*sequences.Record {
	return r.Records[r.Metadata.Stats.AnnotatedRecords:]
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("%d records from %d files (%d annotated, %d sequences attached, %d FASTA passed through)",
		len(r.Records), len(r.Metadata.Paths), s.AnnotatedRecords, s.Attached, s.Leftover)
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
