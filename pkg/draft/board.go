// Package draft owns the transient per-cell edit state layered over
// committed allocations. A cell is one (work category, date) pair; at most
// one draft may be open per cell, and the committed list changes only after
// the planning service confirms a write.
package draft

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/remote"
)

// Guard and resolution failures. The original behavior for these was a
// silent no-op; the board keeps the no-op (no state changes) but names the
// outcome so callers can surface it.
var (
	// ErrDraftOpen means the cell already has an open draft.
	ErrDraftOpen = errors.New("draft: cell already has an open draft")
	// ErrCellOccupied means a committed allocation already fills the cell.
	ErrCellOccupied = errors.New("draft: cell already holds a committed allocation")
	// ErrNoDraft means the cell has no draft to change, commit, or cancel.
	ErrNoDraft = errors.New("draft: no open draft for cell")
	// ErrCategoryUnknown means a draft references a work category the board
	// cannot resolve, so the owning event id is unknown and no write is sent.
	ErrCategoryUnknown = errors.New("draft: work category not found")
)

// genericCommitMessage is the cell error fallback when the service fails
// without a usable message.
const genericCommitMessage = "could not save the allocation"

// Unit is the effort unit carried on a draft.
type Unit string

// UnitHours is the only unit the planning service currently accepts.
const UnitHours Unit = "hours"

// CellKey identifies one editable cell.
type CellKey struct {
	WorkCategoryID string
	Date           civil.Date
}

func (k CellKey) String() string {
	return k.WorkCategoryID + "::" + k.Date.String()
}

// Draft is one unsaved cell edit. An empty AllocationID means the cell is
// being created; otherwise an existing committed allocation is being edited.
type Draft struct {
	AllocationID string
	Key          CellKey
	EffortValue  float64
	EffortUnit   Unit
}

// Creating reports whether the draft targets an empty cell.
func (d Draft) Creating() bool { return d.AllocationID == "" }

// Board holds the committed allocations plus the draft and cell-error maps.
// It is safe for use from UI command goroutines; reads always see a settled
// snapshot.
type Board struct {
	mu sync.Mutex

	repo      remote.Repository
	onRefresh func(context.Context)

	categories  map[string]plan.WorkCategory
	allocations []plan.Allocation
	byCell      map[CellKey]int // index into allocations

	drafts map[CellKey]Draft
	errors map[CellKey]string
}

// NewBoard builds an empty board writing through repo. onRefresh, when not
// nil, runs after every confirmed mutation so callers can re-fetch the
// evaluation aggregates.
func NewBoard(repo remote.Repository, onRefresh func(context.Context)) *Board {
	return &Board{
		repo:       repo,
		onRefresh:  onRefresh,
		categories: map[string]plan.WorkCategory{},
		byCell:     map[CellKey]int{},
		drafts:     map[CellKey]Draft{},
		errors:     map[CellKey]string{},
	}
}

// SetWorkCategories replaces the category lookup used to resolve event ids
// at commit time.
func (b *Board) SetWorkCategories(categories []plan.WorkCategory) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.categories = make(map[string]plan.WorkCategory, len(categories))
	for _, wc := range categories {
		b.categories[wc.ID] = wc
	}
}

// SetAllocations replaces the committed list, for example after an initial
// load. Open drafts and cell errors are left alone.
func (b *Board) SetAllocations(allocations []plan.Allocation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocations = append(b.allocations[:0:0], allocations...)
	b.reindex()
}

func (b *Board) reindex() {
	b.byCell = make(map[CellKey]int, len(b.allocations))
	for i, a := range b.allocations {
		b.byCell[CellKey{WorkCategoryID: a.WorkCategoryID, Date: a.Date}] = i
	}
}

// Allocations returns a copy of the committed list.
func (b *Board) Allocations() []plan.Allocation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]plan.Allocation(nil), b.allocations...)
}

// AllocationAt returns the committed allocation for a cell, if any.
func (b *Board) AllocationAt(key CellKey) (plan.Allocation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.byCell[key]
	if !ok {
		return plan.Allocation{}, false
	}
	return b.allocations[i], true
}

// Draft returns the open draft for a cell, if any.
func (b *Board) Draft(key CellKey) (Draft, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.drafts[key]
	return d, ok
}

// Drafts returns a copy of the open draft map.
func (b *Board) Drafts() map[CellKey]Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[CellKey]Draft, len(b.drafts))
	for k, d := range b.drafts {
		out[k] = d
	}
	return out
}

// CellError returns the unresolved server error for a cell, if any.
func (b *Board) CellError(key CellKey) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg, ok := b.errors[key]
	return msg, ok
}

// Errors returns a copy of the cell-error map.
func (b *Board) Errors() map[CellKey]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[CellKey]string, len(b.errors))
	for k, msg := range b.errors {
		out[k] = msg
	}
	return out
}

// StartCreate opens a creating draft on an empty cell. The board is left
// untouched when the cell already has a draft or a committed allocation.
func (b *Board) StartCreate(workCategoryID string, date civil.Date) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := CellKey{WorkCategoryID: workCategoryID, Date: date}
	if _, open := b.drafts[key]; open {
		return ErrDraftOpen
	}
	if _, occupied := b.byCell[key]; occupied {
		return ErrCellOccupied
	}
	b.drafts[key] = Draft{Key: key, EffortUnit: UnitHours}
	return nil
}

// StartEdit opens an editing draft over an existing committed allocation,
// seeding the value from its hours. No-op when a draft is already open.
func (b *Board) StartEdit(allocationID, workCategoryID string, date civil.Date, hours float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := CellKey{WorkCategoryID: workCategoryID, Date: date}
	if _, open := b.drafts[key]; open {
		return ErrDraftOpen
	}
	b.drafts[key] = Draft{
		AllocationID: allocationID,
		Key:          key,
		EffortValue:  hours,
		EffortUnit:   UnitHours,
	}
	return nil
}

// Change updates an open draft's value locally. No network traffic.
func (b *Board) Change(key CellKey, value float64, unit Unit) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.drafts[key]
	if !ok {
		return ErrNoDraft
	}
	d.EffortValue = value
	if unit != "" {
		d.EffortUnit = unit
	}
	b.drafts[key] = d
	return nil
}

// Commit writes a cell's draft through the planning service. On success the
// returned allocation replaces or joins the committed list, the draft and
// any cell error are discarded, and the refresh hook runs. On failure the
// draft stays untouched and the server's message (or a generic fallback)
// lands in the cell-error map.
//
// Nothing stops a second Commit for the same cell while the first is still
// in flight; the service's uniqueness rules are the only arbiter.
func (b *Board) Commit(ctx context.Context, key CellKey) error {
	b.mu.Lock()
	d, ok := b.drafts[key]
	if !ok {
		b.mu.Unlock()
		return ErrNoDraft
	}
	wc, ok := b.categories[key.WorkCategoryID]
	if !ok {
		b.mu.Unlock()
		return ErrCategoryUnknown
	}
	b.mu.Unlock()

	change := remote.AllocationChange{
		EventID:        wc.EventID,
		WorkCategoryID: key.WorkCategoryID,
		Date:           key.Date,
		EffortValue:    d.EffortValue,
		EffortUnit:     string(d.EffortUnit),
	}

	var committed plan.Allocation
	var err error
	if d.Creating() {
		committed, err = b.repo.CreateAllocation(ctx, change)
	} else {
		committed, err = b.repo.UpdateAllocation(ctx, d.AllocationID, change)
	}

	b.mu.Lock()
	if err != nil {
		// A cancel that raced the request already dropped the draft; a late
		// failure must not resurrect its error line.
		if _, still := b.drafts[key]; still {
			b.errors[key] = commitMessage(err)
		}
		b.mu.Unlock()
		return err
	}

	cell := CellKey{WorkCategoryID: committed.WorkCategoryID, Date: committed.Date}
	if i, exists := b.byCell[cell]; exists {
		b.allocations[i] = committed
	} else {
		b.allocations = append(b.allocations, committed)
		b.byCell[cell] = len(b.allocations) - 1
	}
	delete(b.drafts, key)
	delete(b.errors, key)
	refresh := b.onRefresh
	b.mu.Unlock()

	if refresh != nil {
		refresh(ctx)
	}
	return nil
}

// Cancel discards a cell's draft and any error for it, regardless of
// in-flight network state. Cancelling a cell with no draft does nothing.
func (b *Board) Cancel(key CellKey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.drafts, key)
	delete(b.errors, key)
}

// Delete removes a committed allocation through the planning service. The
// committed list changes only after the service confirms; a failure leaves
// it untouched and is returned for non-cell-scoped surfacing.
func (b *Board) Delete(ctx context.Context, allocationID string) error {
	if err := b.repo.DeleteAllocation(ctx, allocationID); err != nil {
		return err
	}

	b.mu.Lock()
	for i, a := range b.allocations {
		if a.ID == allocationID {
			b.allocations = append(b.allocations[:i], b.allocations[i+1:]...)
			b.reindex()
			break
		}
	}
	refresh := b.onRefresh
	b.mu.Unlock()

	if refresh != nil {
		refresh(ctx)
	}
	return nil
}

func commitMessage(err error) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericCommitMessage
}
