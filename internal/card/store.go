package card

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidIndex is returned for out-of-range record indices.
	ErrInvalidIndex = errors.New("record index out of range")
	// ErrUnknownField is returned when a field name is not editable.
	ErrUnknownField = errors.New("unknown record field")
)

// Store is the ordered in-memory table of records for one processing run.
// Order is enumeration order and is preserved through edits. The store is
// safe for concurrent reads; mutation happens from the main interaction
// loop and the single scan worker.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Reset discards all records.
func (s *Store) Reset() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}

// Append adds a record at the end and returns its index.
func (s *Store) Append(r Record) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return len(s.records) - 1
}

// At returns the record at index i.
func (s *Store) At(i int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.records) {
		return Record{}, ErrInvalidIndex
	}
	return s.records[i], nil
}

// Replace overwrites the record at index i, keeping its position.
func (s *Store) Replace(i int, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.records) {
		return ErrInvalidIndex
	}
	s.records[i] = r
	return nil
}

// UpdateField sets one editable field of the record at index i and marks
// the record as manually edited. The value is stored as given; callers
// normalize before updating.
func (s *Store) UpdateField(i int, f Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.records) {
		return ErrInvalidIndex
	}
	switch f {
	case FieldTitle:
		s.records[i].Title = value
	case FieldCollectorNumber:
		s.records[i].CollectorNumber = value
	case FieldSetCode:
		s.records[i].SetCode = value
	default:
		return ErrUnknownField
	}
	s.records[i].Status = StatusManuallyEdited
	return nil
}

// Snapshot returns a copy of all records in store order.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
