// Package get provides runners that list planning data inside the active
// window.
package get

import (
	"context"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/runner/load"
)

// Kind selects which dataset to print.
type Kind string

const (
	KindEvents      Kind = "events"
	KindCategories  Kind = "categories"
	KindAllocations Kind = "allocations"
)

type Get struct {
	Kind   Kind
	ShowID bool

	Loader      load.Loader
	Selection   *daterange.Selection
	EventIDs    []string
	LocationIDs []string
}

// Do prints the selected dataset filtered to the active window.
func (g *Get) Do(ctx context.Context) error {
	snap, err := g.Loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	sel := g.Selection
	if sel == nil {
		sel = daterange.NewSelection()
	}
	f := plan.BuildFilter(sel, snap.Events, g.EventIDs, g.LocationIDs, civil.Today())
	v := f.Apply(snap)

	pp := printers.PrettyPrint{ShowID: g.ShowID}
	pp.NewLine()
	switch g.Kind {
	case KindEvents:
		pp.TitleWithCount("Events", len(v.Events))
		pp.Events(v.Events...)
	case KindCategories:
		pp.TitleWithCount("Work Categories", len(v.WorkCategories))
		pp.WorkCategories(v.WorkCategories...)
	default:
		pp.TitleWithCount("Allocations", len(v.Allocations))
		pp.Allocations(CategoryNames(v.WorkCategories), v.Allocations...)
	}
	return nil
}

// CategoryNames maps category ids to display names.
func CategoryNames(categories []plan.WorkCategory) map[string]string {
	names := make(map[string]string, len(categories))
	for _, wc := range categories {
		names[wc.ID] = wc.Name
	}
	return names
}
