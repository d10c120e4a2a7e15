// Package ui launches the interactive allocation grid.
package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/draft"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/remote"
	"tableflip.dev/tempo/pkg/runner/load"
	"tableflip.dev/tempo/pkg/tui"
)

type UI struct {
	Repository remote.Repository
	Loader     load.Loader

	Selection   *daterange.Selection
	EventIDs    []string
	LocationIDs []string
}

// Do builds the filtered view, binds a draft board to it, and runs the grid
// editor until the user quits. Confirmed allocations are re-cached on exit.
func (u *UI) Do(ctx context.Context) error {
	if u.Repository == nil {
		return errors.New("can not edit, no planning service configured")
	}

	snap, err := u.Loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	sel := u.Selection
	if sel == nil {
		sel = daterange.NewSelection()
	}
	today := civil.Today()
	view, days := u.viewAndDays(sel, snap, today)
	if len(days) == 0 {
		return errors.New("ui: the visible window resolves to no days")
	}

	board := draft.NewBoard(u.Repository, func(ctx context.Context) {
		if u.Loader.Cache == nil {
			return
		}
		if eval, err := u.Repository.Evaluation(ctx, ""); err == nil {
			_ = u.Loader.Cache.SaveEvaluation(eval)
		}
	})
	board.SetWorkCategories(snap.WorkCategories)
	board.SetAllocations(snap.Allocations)

	reload := func() (plan.View, []civil.Date, error) {
		if u.Loader.Cache == nil {
			return view, days, nil
		}
		fresh, err := u.Loader.Cache.LoadSnapshot()
		if err != nil {
			return plan.View{}, nil, err
		}
		v, d := u.viewAndDays(sel, fresh, civil.Today())
		return v, d, nil
	}

	model := tui.NewModel(board, view, days, reload)
	p := tea.NewProgram(model, tea.WithAltScreen())

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if u.Loader.Cache != nil {
		if events, err := u.Loader.Cache.Watch(watchCtx); err == nil {
			go func() {
				for range events {
					p.Send(tui.ExternalChangeMsg{})
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	if u.Loader.Cache != nil {
		if err := u.Loader.Cache.SaveAllocations(board.Allocations()); err != nil {
			return err
		}
	}
	return nil
}

// viewAndDays filters the snapshot and materializes the visible columns.
// An unbounded window falls back to the current month so the grid stays
// finite.
func (u *UI) viewAndDays(sel *daterange.Selection, snap plan.Snapshot, today civil.Date) (plan.View, []civil.Date) {
	f := plan.BuildFilter(sel, snap.Events, u.EventIDs, u.LocationIDs, today)
	view := f.Apply(snap)

	days, err := daterange.Materialize(sel.View(today))
	if err != nil {
		days, _ = daterange.Materialize(daterange.Range{
			Start: today.MonthStart(),
			End:   today.MonthEnd(),
		})
	}
	return view, days
}
