// Package lanes prints each event's work categories stacked into
// non-overlapping display lanes.
package lanes

import (
	"context"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/runner/load"
	"tableflip.dev/tempo/pkg/timeline"
)

type Lanes struct {
	Loader      load.Loader
	Selection   *daterange.Selection
	EventIDs    []string
	LocationIDs []string
}

// Do assigns lanes per event and prints them against the view window, which
// may be wider than the filter window when range locking is off.
func (l *Lanes) Do(ctx context.Context) error {
	snap, err := l.Loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	sel := l.Selection
	if sel == nil {
		sel = daterange.NewSelection()
	}
	today := civil.Today()
	f := plan.BuildFilter(sel, snap.Events, l.EventIDs, l.LocationIDs, today)
	v := f.Apply(snap)
	view := sel.View(today)

	byCategory := timeline.ByCategory(v.Allocations)

	pp := printers.PrettyPrint{}
	pp.NewLine()
	for _, e := range v.Events {
		var rows []timeline.Row
		for _, wc := range v.WorkCategories {
			if wc.EventID != e.ID {
				continue
			}
			if row, ok := timeline.NewRow(wc.ID, wc.Name, byCategory[wc.ID]); ok {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		stacked, laneCount := timeline.AssignLanes(rows)
		pp.TitleWithCount(e.Name, laneCount)
		pp.Lanes(stacked, view)
	}
	return nil
}
