// Package set commits one cell's effort hours through the draft lifecycle.
package set

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/draft"
	"tableflip.dev/tempo/pkg/remote"
	"tableflip.dev/tempo/pkg/runner/load"
)

type Set struct {
	WorkCategoryID string
	Date           civil.Date
	Hours          float64

	Repository remote.Repository
	Loader     load.Loader
}

// Do opens a draft on the cell (creating or editing as the cell dictates),
// commits it, and reports the cell-scoped error on rejection. The committed
// list and evaluation aggregates are re-cached only after the service
// confirms.
func (s *Set) Do(ctx context.Context) error {
	if s.Repository == nil {
		return errors.New("can not set, no planning service configured")
	}

	snap, err := s.Loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	board := draft.NewBoard(s.Repository, func(ctx context.Context) {
		if s.Loader.Cache == nil {
			return
		}
		if eval, err := s.Repository.Evaluation(ctx, ""); err == nil {
			_ = s.Loader.Cache.SaveEvaluation(eval)
		}
	})
	board.SetWorkCategories(snap.WorkCategories)
	board.SetAllocations(snap.Allocations)

	key := draft.CellKey{WorkCategoryID: s.WorkCategoryID, Date: s.Date}
	if existing, ok := board.AllocationAt(key); ok {
		err = board.StartEdit(existing.ID, s.WorkCategoryID, s.Date, existing.EffortHours)
	} else {
		err = board.StartCreate(s.WorkCategoryID, s.Date)
	}
	if err != nil {
		return err
	}
	if err := board.Change(key, s.Hours, draft.UnitHours); err != nil {
		return err
	}

	if err := board.Commit(ctx, key); err != nil {
		if msg, ok := board.CellError(key); ok {
			return fmt.Errorf("%s %s: %s", s.WorkCategoryID, s.Date, msg)
		}
		return err
	}

	if s.Loader.Cache != nil {
		if err := s.Loader.Cache.SaveAllocations(board.Allocations()); err != nil {
			return err
		}
	}

	g := color.New(color.FgGreen)
	_, _ = g.Printf("set %s on %s to %gh\n", s.WorkCategoryID, s.Date, s.Hours)
	return nil
}
