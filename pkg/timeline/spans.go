// Package timeline turns discrete daily allocations into continuous visual
// intervals: maximal per-category spans and non-overlapping display lanes.
package timeline

import (
	"sort"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/plan"
)

// Span is a maximal run of consecutive days each holding one allocation for
// a single work category.
type Span struct {
	WorkCategoryID string
	StartDate      civil.Date
	EndDate        civil.Date
	TotalHours     float64
}

// Days returns the inclusive length of the span in days.
func (s Span) Days() int {
	return civil.DaysBetween(s.StartDate, s.EndDate) + 1
}

// BuildSpans merges one work category's allocations into maximal contiguous
// spans. A span extends exactly when the next allocation lands one calendar
// day after the span's current end. Input order does not matter; duplicate
// dates are not detected here, the uniqueness invariant upstream prevents
// them.
func BuildSpans(allocations []plan.Allocation) []Span {
	if len(allocations) == 0 {
		return nil
	}

	sorted := append([]plan.Allocation(nil), allocations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	spans := make([]Span, 0, 4)
	current := Span{
		WorkCategoryID: sorted[0].WorkCategoryID,
		StartDate:      sorted[0].Date,
		EndDate:        sorted[0].Date,
		TotalHours:     sorted[0].EffortHours,
	}
	for _, a := range sorted[1:] {
		if a.Date == current.EndDate.Next() {
			current.EndDate = a.Date
			current.TotalHours += a.EffortHours
			continue
		}
		spans = append(spans, current)
		current = Span{
			WorkCategoryID: a.WorkCategoryID,
			StartDate:      a.Date,
			EndDate:        a.Date,
			TotalHours:     a.EffortHours,
		}
	}
	return append(spans, current)
}

// ByCategory groups allocations by work category and builds spans for each.
func ByCategory(allocations []plan.Allocation) map[string][]Span {
	grouped := map[string][]plan.Allocation{}
	for _, a := range allocations {
		grouped[a.WorkCategoryID] = append(grouped[a.WorkCategoryID], a)
	}
	out := make(map[string][]Span, len(grouped))
	for id, group := range grouped {
		out[id] = BuildSpans(group)
	}
	return out
}
