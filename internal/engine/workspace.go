package engine

import (
	"fmt"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/shopspring/decimal"
)

// EditState is the edit workflow state: Idle, or Editing a bound entry.
type EditState struct {
	Editing bool
	EntryID int64 // Bound entry while Editing
}

func (s EditState) String() string {
	if !s.Editing {
		return "Idle"
	}
	return fmt.Sprintf("Editing(%d)", s.EntryID)
}

// CommitResult is everything a form needs after a successful submit: the
// committed entry, fresh totals and the next blank form, all computed in
// the same step.
type CommitResult struct {
	Entry    model.Entry
	Updated  bool // true when an existing entry was edited
	Totals   model.Totals
	NextForm model.Fields
}

// Workspace is one calculation module's session. It owns the entry store,
// rate memory, edit state and undo history.
type Workspace struct {
	store   *EntryStore
	rates   *RateMemory
	history *History
	state   EditState
	last    model.Fields // Fields of the most recent commit
}

// NewWorkspace creates an empty workspace for module.
func NewWorkspace(module model.Module) *Workspace {
	return &Workspace{
		store:   NewEntryStore(module),
		rates:   NewRateMemory(),
		history: NewHistory(),
	}
}

// Module returns the workspace's module.
func (w *Workspace) Module() model.Module { return w.store.Module() }

// Entries returns the entries in insertion order.
func (w *Workspace) Entries() []model.Entry { return w.store.List() }

// Entry returns a single entry by ID.
func (w *Workspace) Entry(id int64) (model.Entry, bool) { return w.store.Get(id) }

// Rates returns the workspace's rate memory.
func (w *Workspace) Rates() *RateMemory { return w.rates }

// State returns the current edit state.
func (w *Workspace) State() EditState { return w.state }

// Totals recomputes the running totals over all entries.
func (w *Workspace) Totals() model.Totals { return Totals(w.store.List()) }

// BlankForm returns the defaults for a new entry. Beading forms carry over
// the size and grade of the last commit so the remembered rate applies.
func (w *Workspace) BlankForm() model.Fields {
	if w.Module() == model.ModuleBeading {
		return w.BlankFormFor(w.last.SizeLabel, w.last.Grade)
	}
	return w.BlankFormFor("", "")
}

// BlankFormFor returns blank defaults for the given beading size and grade.
// Size and grade are ignored for the flat modules.
func (w *Workspace) BlankFormFor(sizeLabel, grade string) model.Fields {
	f := model.Fields{Quantity: 1}
	if w.Module() == model.ModuleBeading {
		f.SizeLabel = sizeLabel
		f.Grade = grade
	}
	if rate, ok := w.rates.Recall(KeyFor(w.Module(), f)); ok {
		f.Rate = decimal.NewNullDecimal(rate)
	}
	return f
}

// Submit commits fields. When Idle it adds a new entry; when Editing it
// updates the bound entry and returns to Idle. A validation failure leaves
// the state unchanged and returns the error.
func (w *Workspace) Submit(fields model.Fields) (CommitResult, error) {
	before := MakeSnapshot(w.store.List(), "")

	var (
		e   model.Entry
		err error
	)
	updated := w.state.Editing
	if updated {
		before.Label = fmt.Sprintf("Edit entry %d", w.state.EntryID)
		e, err = w.store.Update(w.state.EntryID, fields)
	} else {
		before.Label = "Add entry"
		e, err = w.store.Add(fields)
	}
	if err != nil {
		return CommitResult{}, err
	}

	w.history.Push(before)
	w.state = EditState{}
	if e.Fields.Rate.Valid {
		w.rates.Remember(KeyFor(w.Module(), e.Fields), e.Fields.Rate.Decimal)
	}
	w.last = e.Fields

	return CommitResult{
		Entry:    e,
		Updated:  updated,
		Totals:   w.Totals(),
		NextForm: w.BlankForm(),
	}, nil
}

// BeginEdit binds the workspace to an existing entry and returns its current
// fields for the form.
func (w *Workspace) BeginEdit(id int64) (model.Fields, error) {
	e, ok := w.store.Get(id)
	if !ok {
		return model.Fields{}, fmt.Errorf("edit entry %d: %w", id, model.ErrItemNotFound)
	}
	w.state = EditState{Editing: true, EntryID: id}
	return e.Fields, nil
}

// Cancel discards an in-progress edit and returns a fresh blank form.
func (w *Workspace) Cancel() model.Fields {
	w.state = EditState{}
	return w.BlankForm()
}

// Remove deletes an entry. Unknown IDs are ignored. Removing the entry being
// edited ends the edit.
func (w *Workspace) Remove(id int64) bool {
	before := MakeSnapshot(w.store.List(), fmt.Sprintf("Remove entry %d", id))
	if !w.store.Remove(id) {
		return false
	}
	w.history.Push(before)
	if w.state.Editing && w.state.EntryID == id {
		w.state = EditState{}
	}
	return true
}

// Clear removes every entry. Rate memory is kept.
func (w *Workspace) Clear() {
	if w.store.Len() == 0 {
		return
	}
	w.history.Push(MakeSnapshot(w.store.List(), "Clear entries"))
	w.store.Restore(nil)
	w.state = EditState{}
}

// Undo restores the entry list from before the last mutation. Any edit in
// progress is cancelled. Returns the undone action's label.
func (w *Workspace) Undo() (string, bool) {
	snap, ok := w.history.Undo(MakeSnapshot(w.store.List(), ""))
	if !ok {
		return "", false
	}
	w.store.Restore(snap.Entries)
	w.state = EditState{}
	return snap.Label, true
}

// Redo re-applies the last undone mutation. Returns the redone action's label.
func (w *Workspace) Redo() (string, bool) {
	snap, ok := w.history.Redo(MakeSnapshot(w.store.List(), ""))
	if !ok {
		return "", false
	}
	w.store.Restore(snap.Entries)
	w.state = EditState{}
	return snap.Label, true
}
