package draft

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/remote"
)

// fakeRepo records writes and answers with canned results.
type fakeRepo struct {
	createErr error
	updateErr error
	deleteErr error

	created []remote.AllocationChange
	updated []string
	deleted []string
	nextID  int
}

func (f *fakeRepo) Events(ctx context.Context) ([]plan.Event, error)                 { return nil, nil }
func (f *fakeRepo) Locations(ctx context.Context) ([]plan.Location, error)           { return nil, nil }
func (f *fakeRepo) EventLocations(ctx context.Context) ([]plan.EventLocation, error) { return nil, nil }
func (f *fakeRepo) WorkCategories(ctx context.Context, eventID string) ([]plan.WorkCategory, error) {
	return nil, nil
}
func (f *fakeRepo) Allocations(ctx context.Context) ([]plan.Allocation, error) { return nil, nil }
func (f *fakeRepo) Evaluation(ctx context.Context, eventID string) (plan.Evaluation, error) {
	return plan.Evaluation{}, nil
}

func (f *fakeRepo) CreateAllocation(ctx context.Context, change remote.AllocationChange) (plan.Allocation, error) {
	if f.createErr != nil {
		return plan.Allocation{}, f.createErr
	}
	f.created = append(f.created, change)
	f.nextID++
	return plan.Allocation{
		ID:             string(rune('a' + f.nextID)),
		EventID:        change.EventID,
		WorkCategoryID: change.WorkCategoryID,
		Date:           change.Date,
		EffortHours:    change.EffortValue,
	}, nil
}

func (f *fakeRepo) UpdateAllocation(ctx context.Context, id string, change remote.AllocationChange) (plan.Allocation, error) {
	if f.updateErr != nil {
		return plan.Allocation{}, f.updateErr
	}
	f.updated = append(f.updated, id)
	return plan.Allocation{
		ID:             id,
		EventID:        change.EventID,
		WorkCategoryID: change.WorkCategoryID,
		Date:           change.Date,
		EffortHours:    change.EffortValue,
	}, nil
}

func (f *fakeRepo) DeleteAllocation(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var (
	day  = civil.MustParse("2024-06-01")
	wc1  = plan.WorkCategory{ID: "w1", EventID: "e1", Name: "Rigging", EstimatedEffortHours: 40}
	key1 = CellKey{WorkCategoryID: "w1", Date: day}
)

func newTestBoard(repo *fakeRepo, refreshed *int) *Board {
	b := NewBoard(repo, func(context.Context) {
		if refreshed != nil {
			*refreshed++
		}
	})
	b.SetWorkCategories([]plan.WorkCategory{wc1})
	return b
}

func TestStartCreateOnOccupiedCellIsNoOp(t *testing.T) {
	b := newTestBoard(&fakeRepo{}, nil)
	b.SetAllocations([]plan.Allocation{{ID: "a1", EventID: "e1", WorkCategoryID: "w1", Date: day, EffortHours: 4}})

	if err := b.StartCreate("w1", day); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	if len(b.Drafts()) != 0 {
		t.Fatalf("drafts must stay unchanged")
	}
}

func TestStartCreateTwiceIsNoOp(t *testing.T) {
	b := newTestBoard(&fakeRepo{}, nil)
	if err := b.StartCreate("w1", day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.StartCreate("w1", day); !errors.Is(err, ErrDraftOpen) {
		t.Fatalf("expected ErrDraftOpen, got %v", err)
	}
	if len(b.Drafts()) != 1 {
		t.Fatalf("expected exactly one draft, got %d", len(b.Drafts()))
	}
}

func TestStartEditSeedsFromCommittedHours(t *testing.T) {
	b := newTestBoard(&fakeRepo{}, nil)
	if err := b.StartEdit("a1", "w1", day, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := b.Draft(key1)
	if !ok || d.EffortValue != 4 || d.Creating() {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if err := b.StartEdit("a1", "w1", day, 4); !errors.Is(err, ErrDraftOpen) {
		t.Fatalf("expected ErrDraftOpen, got %v", err)
	}
}

func TestChangeIsLocalOnly(t *testing.T) {
	repo := &fakeRepo{}
	b := newTestBoard(repo, nil)
	if err := b.Change(key1, 5, UnitHours); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	_ = b.StartCreate("w1", day)
	if err := b.Change(key1, 5, UnitHours); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, _ := b.Draft(key1)
	if d.EffortValue != 5 {
		t.Fatalf("expected value 5, got %v", d.EffortValue)
	}
	if len(repo.created)+len(repo.updated) != 0 {
		t.Fatalf("Change must not touch the network")
	}
}

func TestCommitCreateSuccess(t *testing.T) {
	refreshed := 0
	repo := &fakeRepo{}
	b := newTestBoard(repo, &refreshed)

	_ = b.StartCreate("w1", day)
	_ = b.Change(key1, 4, UnitHours)
	if err := b.Commit(context.Background(), key1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 1 || repo.created[0].EventID != "e1" {
		t.Fatalf("expected one create carrying the resolved event id: %+v", repo.created)
	}
	if len(b.Drafts()) != 0 {
		t.Fatalf("draft must be discarded on success")
	}
	allocs := b.Allocations()
	if len(allocs) != 1 || allocs[0].EffortHours != 4 {
		t.Fatalf("expected exactly one committed allocation, got %+v", allocs)
	}
	if refreshed != 1 {
		t.Fatalf("expected one evaluation refresh, got %d", refreshed)
	}
}

func TestCommitEditReplacesInPlace(t *testing.T) {
	repo := &fakeRepo{}
	b := newTestBoard(repo, nil)
	b.SetAllocations([]plan.Allocation{{ID: "a1", EventID: "e1", WorkCategoryID: "w1", Date: day, EffortHours: 4}})

	_ = b.StartEdit("a1", "w1", day, 4)
	_ = b.Change(key1, 6, UnitHours)
	if err := b.Commit(context.Background(), key1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.updated) != 1 || repo.updated[0] != "a1" {
		t.Fatalf("expected PATCH of a1, got %+v", repo.updated)
	}
	allocs := b.Allocations()
	if len(allocs) != 1 || allocs[0].EffortHours != 6 {
		t.Fatalf("replace must never duplicate the cell: %+v", allocs)
	}
}

func TestCommitUnknownCategoryKeepsDraft(t *testing.T) {
	repo := &fakeRepo{}
	b := NewBoard(repo, nil) // no categories registered
	_ = b.StartCreate("w9", day)
	key := CellKey{WorkCategoryID: "w9", Date: day}

	err := b.Commit(context.Background(), key)
	if !errors.Is(err, ErrCategoryUnknown) {
		t.Fatalf("expected ErrCategoryUnknown, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no write may be issued without an event id")
	}
	if _, ok := b.Draft(key); !ok {
		t.Fatalf("draft must be retained")
	}
}

func TestCommitServerRejectionScopesErrorToCell(t *testing.T) {
	repo := &fakeRepo{createErr: &remote.APIError{StatusCode: 409, Message: "Allocation exceeds estimate"}}
	b := newTestBoard(repo, nil)

	_ = b.StartCreate("w1", day)
	_ = b.Change(key1, 99, UnitHours)
	if err := b.Commit(context.Background(), key1); err == nil {
		t.Fatalf("expected commit error")
	}

	if msg, ok := b.CellError(key1); !ok || msg != "Allocation exceeds estimate" {
		t.Fatalf("expected the server message on the cell, got %q", msg)
	}
	if _, ok := b.Draft(key1); !ok {
		t.Fatalf("draft must be retained after a rejection")
	}
	if len(b.Allocations()) != 0 {
		t.Fatalf("committed list must stay untouched")
	}
}

func TestCommitTransportErrorUsesGenericMessage(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("connection reset")}
	b := newTestBoard(repo, nil)

	_ = b.StartCreate("w1", day)
	_ = b.Commit(context.Background(), key1)

	if msg, ok := b.CellError(key1); !ok || msg != genericCommitMessage {
		t.Fatalf("expected generic fallback message, got %q", msg)
	}
}

func TestCancelClearsDraftAndError(t *testing.T) {
	repo := &fakeRepo{createErr: &remote.APIError{StatusCode: 400, Message: "bad value"}}
	b := newTestBoard(repo, nil)

	_ = b.StartCreate("w1", day)
	_ = b.Commit(context.Background(), key1) // fails, sets the cell error

	b.Cancel(key1)
	if _, ok := b.Draft(key1); ok {
		t.Fatalf("cancel must drop the draft")
	}
	if _, ok := b.CellError(key1); ok {
		t.Fatalf("cancel must drop the cell error")
	}

	// Cancelling an idle cell stays a no-op.
	b.Cancel(key1)
}

func TestCommitAfterErrorRetrySucceeds(t *testing.T) {
	repo := &fakeRepo{createErr: &remote.APIError{StatusCode: 409, Message: "Allocation exceeds estimate"}}
	b := newTestBoard(repo, nil)

	_ = b.StartCreate("w1", day)
	_ = b.Commit(context.Background(), key1)

	repo.createErr = nil
	_ = b.Change(key1, 2, UnitHours)
	if err := b.Commit(context.Background(), key1); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if _, ok := b.CellError(key1); ok {
		t.Fatalf("success must clear the cell error")
	}
	if len(b.Allocations()) != 1 {
		t.Fatalf("expected one committed allocation")
	}
}

func TestDeleteOnlyMutatesAfterConfirmation(t *testing.T) {
	refreshed := 0
	repo := &fakeRepo{deleteErr: errors.New("boom")}
	b := newTestBoard(repo, &refreshed)
	b.SetAllocations([]plan.Allocation{{ID: "a1", EventID: "e1", WorkCategoryID: "w1", Date: day, EffortHours: 4}})

	if err := b.Delete(context.Background(), "a1"); err == nil {
		t.Fatalf("expected delete error")
	}
	if len(b.Allocations()) != 1 {
		t.Fatalf("failed delete must leave the list untouched")
	}
	if refreshed != 0 {
		t.Fatalf("failed delete must not refresh")
	}

	repo.deleteErr = nil
	if err := b.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Allocations()) != 0 {
		t.Fatalf("confirmed delete must remove the allocation")
	}
	if refreshed != 1 {
		t.Fatalf("confirmed delete must refresh once, got %d", refreshed)
	}
}

func TestCellKeyString(t *testing.T) {
	if got := key1.String(); got != "w1::2024-06-01" {
		t.Fatalf("unexpected key form: %s", got)
	}
}
