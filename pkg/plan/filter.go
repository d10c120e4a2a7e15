package plan

import (
	"sort"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
)

// Filter narrows a snapshot. Composition order matters: explicit id
// selections first, then the date range, then derived sets by surviving
// event ids. Evaluation rows are filtered by date only since they arrive
// pre-aggregated; pressure rows follow the surviving category set.
type Filter struct {
	EventIDs    map[string]bool // empty means all
	LocationIDs map[string]bool // empty means all
	Range       daterange.Range
}

// View is the filtered slice of a snapshot handed to display layers.
type View struct {
	Events         []Event
	EventLocations []EventLocation
	WorkCategories []WorkCategory
	Allocations    []Allocation
	Evaluation     Evaluation

	EventIDs        map[string]bool
	WorkCategoryIDs map[string]bool
}

// Apply runs the filter pipeline over the snapshot.
func (f Filter) Apply(s Snapshot) View {
	locatedEvents := map[string]bool{}
	if len(f.LocationIDs) > 0 {
		for _, el := range s.EventLocations {
			if f.LocationIDs[el.LocationID] {
				locatedEvents[el.EventID] = true
			}
		}
	}

	v := View{
		EventIDs:        map[string]bool{},
		WorkCategoryIDs: map[string]bool{},
	}

	for _, e := range s.Events {
		if len(f.EventIDs) > 0 && !f.EventIDs[e.ID] {
			continue
		}
		if len(f.LocationIDs) > 0 && !locatedEvents[e.ID] {
			continue
		}
		start, end := e.EffectiveRange()
		if !f.Range.Intersects(start, end) {
			continue
		}
		v.Events = append(v.Events, e)
		v.EventIDs[e.ID] = true
	}

	for _, el := range s.EventLocations {
		if v.EventIDs[el.EventID] {
			v.EventLocations = append(v.EventLocations, el)
		}
	}
	for _, wc := range s.WorkCategories {
		if v.EventIDs[wc.EventID] {
			v.WorkCategories = append(v.WorkCategories, wc)
			v.WorkCategoryIDs[wc.ID] = true
		}
	}
	for _, a := range s.Allocations {
		if v.EventIDs[a.EventID] {
			v.Allocations = append(v.Allocations, a)
		}
	}

	for _, row := range s.Evaluation.DailyDemand {
		if f.Range.Contains(row.Date) {
			v.Evaluation.DailyDemand = append(v.Evaluation.DailyDemand, row)
		}
	}
	for _, row := range s.Evaluation.DailyCapacityComparison {
		if f.Range.Contains(row.Date) {
			v.Evaluation.DailyCapacityComparison = append(v.Evaluation.DailyCapacityComparison, row)
		}
	}
	for _, row := range s.Evaluation.WorkCategoryPressure {
		if v.WorkCategoryIDs[row.WorkCategoryID] {
			v.Evaluation.WorkCategoryPressure = append(v.Evaluation.WorkCategoryPressure, row)
		}
	}

	return v
}

// BuildFilter wires a date-range selection and explicit id selections into a
// Filter. It feeds the unfiltered event years into the selection first so
// the resolver's year guard sees current data.
func BuildFilter(sel *daterange.Selection, events []Event, eventIDs, locationIDs []string, today civil.Date) Filter {
	sel.SetAvailableYears(AvailableYears(events))
	return Filter{
		EventIDs:    toSet(eventIDs),
		LocationIDs: toSet(locationIDs),
		Range:       sel.Active(today),
	}
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}

// AvailableYears lists the distinct years covered by the unfiltered event
// set, ascending. Feeds the date-range resolver's year guard.
func AvailableYears(events []Event) []int {
	seen := map[int]bool{}
	for _, e := range events {
		start, end := e.EffectiveRange()
		if start.IsZero() || end.IsZero() || end.Before(start) {
			continue
		}
		for y := start.Year; y <= end.Year; y++ {
			seen[y] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
