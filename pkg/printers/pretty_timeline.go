package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/timeline"
)

// barLimit keeps lane bars readable; wider windows drop the bar column.
const barLimit = 92

func (pp *PrettyPrint) Spans(spans ...timeline.Span) {
	if len(spans) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("From"), bold("To"), bold("Days"), bold("Hours"))
	for _, s := range spans {
		tbl.AddRow(s.StartDate.String(), s.EndDate.String(), s.Days(), hours(s.TotalHours))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Lanes renders stacked rows, with a per-day bar when the view window is
// narrow enough to draw one.
func (pp *PrettyPrint) Lanes(rows []timeline.Row, view daterange.Range) {
	if len(rows) == 0 {
		pp.none()
		return
	}

	var days []civil.Date
	if view.Bounded() {
		if expanded, err := daterange.Materialize(view); err == nil && len(expanded) <= barLimit {
			days = expanded
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold("Lane"), bold("Category"), bold("From"), bold("To")}
	if days != nil {
		header = append(header, "")
	}
	tbl.AddRow(header...)
	for _, r := range rows {
		row := []interface{}{r.Lane, r.Name, r.RangeStart.String(), r.RangeEnd.String()}
		if days != nil {
			row = append(row, laneBar(r, days))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func laneBar(r timeline.Row, days []civil.Date) string {
	var b strings.Builder
	for _, day := range days {
		covered := false
		for _, s := range r.Spans {
			if !day.Before(s.StartDate) && !day.After(s.EndDate) {
				covered = true
				break
			}
		}
		if covered {
			b.WriteRune('█')
		} else {
			b.WriteRune('·')
		}
	}
	return b.String()
}
