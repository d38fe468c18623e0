package reconciler

import (
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// FastaIndex holds sequence-only records in ingestion order, keyed by ID.
//
// Lookups always see every record ever added; consumption only removes a
// record from the leftover pool. Records are never reordered, so marking one
// consumed does not disturb any other position.
type FastaIndex struct {
	pool      []*sequences.Record
	byID      map[string]int
	consumed  []bool
	remaining int
}

// NewFastaIndex creates an empty index.
func NewFastaIndex() *FastaIndex {
	return &FastaIndex{byID: make(map[string]int)}
}

// BuildIndex indexes records in order, failing on the first repeated ID.
func BuildIndex(records []*sequences.Record) (*FastaIndex, error) {
	ix := NewFastaIndex()
	for _, rec := range records {
		if err := ix.Add(rec); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

// Add appends rec to the pool. A record whose ID is already indexed yields a
// DuplicateIdentifierError naming both source files.
func (ix *FastaIndex) Add(rec *sequences.Record) error {
	if rec == nil || rec.ID == "" {
		return errors.NewValidationError("id", "", "sequence record must have a non-empty ID")
	}
	if i, ok := ix.byID[rec.ID]; ok {
		return &errors.DuplicateIdentifierError{
			ID:         rec.ID,
			FirstPath:  ix.pool[i].Source.Path,
			SecondPath: rec.Source.Path,
		}
	}
	ix.byID[rec.ID] = len(ix.pool)
	ix.pool = append(ix.pool, rec)
	ix.consumed = append(ix.consumed, false)
	ix.remaining++
	return nil
}

// Lookup returns the record with id, consumed or not.
func (ix *FastaIndex) Lookup(id string) (*sequences.Record, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return nil, false
	}
	return ix.pool[i], true
}

// Consume removes the record with id from the leftover pool. It reports
// false when id is unknown or already consumed.
func (ix *FastaIndex) Consume(id string) bool {
	i, ok := ix.byID[id]
	if !ok || ix.consumed[i] {
		return false
	}
	ix.consumed[i] = true
	ix.remaining--
	return true
}

// Consumed reports whether the record with id has been consumed.
func (ix *FastaIndex) Consumed(id string) bool {
	i, ok := ix.byID[id]
	return ok && ix.consumed[i]
}

// Len returns the number of indexed records.
func (ix *FastaIndex) Len() int {
	return len(ix.pool)
}

// Remaining returns the number of unconsumed records.
func (ix *FastaIndex) Remaining() int {
	return ix.remaining
}

// Leftover returns the unconsumed records in ingestion order.
func (ix *FastaIndex) Leftover() []*sequences.Record {
	out := make([]*sequences.Record, 0, ix.remaining)
	for i, rec := range ix.pool {
		if !ix.consumed[i] {
			out = append(out, rec)
		}
	}
	return out
}
