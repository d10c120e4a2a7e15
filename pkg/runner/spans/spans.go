// Package spans prints merged allocation spans per work category.
package spans

import (
	"context"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/runner/load"
	"tableflip.dev/tempo/pkg/timeline"
)

type Spans struct {
	Loader      load.Loader
	Selection   *daterange.Selection
	EventIDs    []string
	LocationIDs []string
}

// Do merges each surviving category's allocations into maximal spans and
// prints them grouped by category.
func (s *Spans) Do(ctx context.Context) error {
	snap, err := s.Loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	sel := s.Selection
	if sel == nil {
		sel = daterange.NewSelection()
	}
	f := plan.BuildFilter(sel, snap.Events, s.EventIDs, s.LocationIDs, civil.Today())
	v := f.Apply(snap)

	byCategory := timeline.ByCategory(v.Allocations)

	pp := printers.PrettyPrint{}
	pp.NewLine()
	for _, wc := range v.WorkCategories {
		spans, ok := byCategory[wc.ID]
		if !ok {
			continue
		}
		pp.TitleWithCount(wc.Name, len(spans))
		pp.Spans(spans...)
	}
	return nil
}
