package timeline

import (
	"sort"

	"tableflip.dev/tempo/pkg/civil"
)

// Row is one work category's aggregate display interval within an event.
type Row struct {
	WorkCategoryID string
	Name           string
	Spans          []Span
	RangeStart     civil.Date
	RangeEnd       civil.Date
	Lane           int
}

// NewRow aggregates a category's spans into a row. Returns false when the
// category has no spans and therefore no place on the timeline.
func NewRow(workCategoryID, name string, spans []Span) (Row, bool) {
	if len(spans) == 0 {
		return Row{}, false
	}
	row := Row{
		WorkCategoryID: workCategoryID,
		Name:           name,
		Spans:          spans,
		RangeStart:     spans[0].StartDate,
		RangeEnd:       spans[0].EndDate,
	}
	for _, s := range spans[1:] {
		row.RangeStart = civil.Min(row.RangeStart, s.StartDate)
		row.RangeEnd = civil.Max(row.RangeEnd, s.EndDate)
	}
	return row, true
}

// AssignLanes stacks rows into display lanes by first-fit interval
// partitioning. Rows are ordered by range start, ties broken by name, and
// each takes the lowest lane whose occupants it does not overlap
// (inclusive-day semantics: intervals are disjoint only when one ends
// strictly before the other begins). Returns the rows with lanes assigned
// and the number of lanes used.
func AssignLanes(rows []Row) ([]Row, int) {
	if len(rows) == 0 {
		return nil, 0
	}

	ordered := append([]Row(nil), rows...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].RangeStart != ordered[j].RangeStart {
			return ordered[i].RangeStart.Before(ordered[j].RangeStart)
		}
		return ordered[i].Name < ordered[j].Name
	})

	var lanes [][]Row
	for i := range ordered {
		placed := false
		for lane := 0; lane < len(lanes) && !placed; lane++ {
			if laneFits(lanes[lane], ordered[i]) {
				ordered[i].Lane = lane
				lanes[lane] = append(lanes[lane], ordered[i])
				placed = true
			}
		}
		if !placed {
			ordered[i].Lane = len(lanes)
			lanes = append(lanes, []Row{ordered[i]})
		}
	}
	return ordered, len(lanes)
}

func laneFits(occupants []Row, candidate Row) bool {
	for _, o := range occupants {
		if !disjoint(o, candidate) {
			return false
		}
	}
	return true
}

func disjoint(a, b Row) bool {
	return a.RangeEnd.Before(b.RangeStart) || b.RangeEnd.Before(a.RangeStart)
}
