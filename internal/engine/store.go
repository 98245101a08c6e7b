// Package engine holds the stateful side of the calculator: the ordered
// entry store, the rate memory, running totals and the edit workflow.
// Everything here is synchronous; one call is one complete mutation.
package engine

import (
	"fmt"

	"github.com/piwi3910/timbercalc/internal/model"
)

// EntryStore is the insertion-ordered collection of entries for one module.
// IDs are strictly increasing and never reused.
type EntryStore struct {
	module  model.Module
	entries []model.Entry
	lastID  int64
}

// NewEntryStore creates an empty store for the given module.
func NewEntryStore(module model.Module) *EntryStore {
	return &EntryStore{module: module}
}

// Module returns the module this store holds entries for.
func (s *EntryStore) Module() model.Module {
	return s.module
}

// Add validates fields and appends a new entry. On validation failure the
// store is left untouched.
func (s *EntryStore) Add(fields model.Fields) (model.Entry, error) {
	e, err := model.NewEntry(s.lastID+1, s.module, fields)
	if err != nil {
		return model.Entry{}, err
	}
	s.lastID = e.ID
	s.entries = append(s.entries, e)
	return e, nil
}

// Update replaces the entry with the given ID in place, recomputing every
// derived value from the new fields.
func (s *EntryStore) Update(id int64, fields model.Fields) (model.Entry, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Entry{}, fmt.Errorf("update entry %d: %w", id, model.ErrItemNotFound)
	}
	e, err := model.NewEntry(id, s.module, fields)
	if err != nil {
		return model.Entry{}, err
	}
	s.entries[idx] = e
	return e, nil
}

// Remove deletes the entry with the given ID. Removing an unknown ID is a
// no-op; the return value reports whether anything was deleted.
func (s *EntryStore) Remove(id int64) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return true
}

// Get returns the entry with the given ID.
func (s *EntryStore) Get(id int64) (model.Entry, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Entry{}, false
	}
	return s.entries[idx], true
}

// List returns a copy of the entries in insertion order.
func (s *EntryStore) List() []model.Entry {
	return copyEntries(s.entries)
}

// Len returns the number of stored entries.
func (s *EntryStore) Len() int {
	return len(s.entries)
}

// Restore replaces the store contents with a previously captured snapshot.
// The ID counter is never rewound, so restored stores keep issuing fresh IDs.
func (s *EntryStore) Restore(entries []model.Entry) {
	s.entries = copyEntries(entries)
	for _, e := range s.entries {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
}

func (s *EntryStore) indexOf(id int64) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// copyEntries returns an independent copy of an entries slice.
func copyEntries(entries []model.Entry) []model.Entry {
	if entries == nil {
		return []model.Entry{}
	}
	cp := make([]model.Entry, len(entries))
	copy(cp, entries)
	return cp
}
