// Package rm deletes a committed allocation.
package rm

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/draft"
	"tableflip.dev/tempo/pkg/remote"
	"tableflip.dev/tempo/pkg/runner/load"
)

type Rm struct {
	AllocationID string

	Repository remote.Repository
	Loader     load.Loader
}

// Do deletes the allocation through the planning service. The cached list
// shrinks only after the service confirms.
func (r *Rm) Do(ctx context.Context) error {
	if r.Repository == nil {
		return errors.New("can not rm, no planning service configured")
	}

	snap, err := r.Loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	board := draft.NewBoard(r.Repository, func(ctx context.Context) {
		if r.Loader.Cache == nil {
			return
		}
		if eval, err := r.Repository.Evaluation(ctx, ""); err == nil {
			_ = r.Loader.Cache.SaveEvaluation(eval)
		}
	})
	board.SetWorkCategories(snap.WorkCategories)
	board.SetAllocations(snap.Allocations)

	if err := board.Delete(ctx, r.AllocationID); err != nil {
		return fmt.Errorf("delete %s: %w", r.AllocationID, err)
	}

	if r.Loader.Cache != nil {
		if err := r.Loader.Cache.SaveAllocations(board.Allocations()); err != nil {
			return err
		}
	}
	fmt.Printf("deleted %s\n", r.AllocationID)
	return nil
}
