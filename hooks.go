package biorefs

import (
	"sync"

	"github.com/agentstation/biorefs/pkg/sequences"
)

// Hook function types for load events
type (
	// FileParsedHook is called after a reference file is parsed
	FileParsedHook func(file sequences.ReferenceFile, records []*sequences.Record)

	// SequenceAttachedHook is called after FASTA content is attached to an
	// annotated record
	SequenceAttachedHook func(annotated, fasta *sequences.Record)
)

// hooks manages event callbacks for a loader
type hooks struct {
	mu                 sync.RWMutex
	onFileParsed       []FileParsedHook
	onSequenceAttached []SequenceAttachedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnFileParsed registers a callback for parsed files
func (h *hooks) OnFileParsed(fn FileParsedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFileParsed = append(h.onFileParsed, fn)
}

// OnSequenceAttached registers a callback for attached sequences
func (h *hooks) OnSequenceAttached(fn SequenceAttachedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSequenceAttached = append(h.onSequenceAttached, fn)
}

// triggerFileParsed calls every FileParsedHook
func (h *hooks) triggerFileParsed(file sequences.ReferenceFile, records []*sequences.Record) {
	h.mu.RLock()
	fns := h.onFileParsed
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(file, records)
	}
}

// triggerSequenceAttached calls every SequenceAttachedHook
func (h *hooks) triggerSequenceAttached(annotated, fasta *sequences.Record) {
	h.mu.RLock()
	fns := h.onSequenceAttached
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(annotated, fasta)
	}
}
