// Package eval prints the planning service's demand and capacity
// aggregates.
package eval

import (
	"context"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/remote"
	"tableflip.dev/tempo/pkg/runner/get"
	"tableflip.dev/tempo/pkg/runner/load"
)

type Eval struct {
	// EventID scopes the evaluation to one event; empty means cross-event.
	EventID string
	// Fresh forces a service fetch instead of cached aggregates.
	Fresh bool

	Repository  remote.Repository
	Loader      load.Loader
	Selection   *daterange.Selection
	EventIDs    []string
	LocationIDs []string
}

// Do prints demand, capacity comparison, and category pressure rows for the
// active window. Aggregates are advisory and never recomputed locally.
func (e *Eval) Do(ctx context.Context) error {
	snap, err := e.Loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	if e.Fresh && e.Repository != nil {
		snap.Evaluation, err = e.Repository.Evaluation(ctx, e.EventID)
		if err != nil {
			return err
		}
		if e.Loader.Cache != nil {
			if err := e.Loader.Cache.SaveEvaluation(snap.Evaluation); err != nil {
				return err
			}
		}
	}

	sel := e.Selection
	if sel == nil {
		sel = daterange.NewSelection()
	}
	f := plan.BuildFilter(sel, snap.Events, e.EventIDs, e.LocationIDs, civil.Today())
	v := f.Apply(snap)

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.TitleWithCount("Daily Demand", len(v.Evaluation.DailyDemand))
	pp.DailyDemand(v.Evaluation.DailyDemand...)
	pp.TitleWithCount("Capacity", len(v.Evaluation.DailyCapacityComparison))
	pp.CapacityComparison(v.Evaluation.DailyCapacityComparison...)
	if len(v.Evaluation.WorkCategoryPressure) > 0 {
		pp.TitleWithCount("Pressure", len(v.Evaluation.WorkCategoryPressure))
		pp.Pressure(get.CategoryNames(v.WorkCategories), v.Evaluation.WorkCategoryPressure...)
	}
	return nil
}
