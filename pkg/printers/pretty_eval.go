package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tempo/pkg/plan"
)

func (pp *PrettyPrint) DailyDemand(rows ...plan.DailyDemand) {
	if len(rows) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Date"), bold("Demand"))
	for _, r := range rows {
		tbl.AddRow(r.Date.String(), hours(r.TotalEffortHours))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) CapacityComparison(rows ...plan.DailyCapacityComparison) {
	if len(rows) == 0 {
		pp.none()
		return
	}
	over := color.New(color.FgHiRed)
	under := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Date"), bold("Demand"), bold("Capacity"), bold(""))
	for _, r := range rows {
		flag := ""
		switch {
		case r.IsOverAllocated:
			flag = over.Sprint("over")
		case r.IsUnderAllocated:
			flag = under.Sprint("under")
		}
		tbl.AddRow(r.Date.String(), hours(r.DemandHours), hours(r.CapacityHours), flag)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) Pressure(names map[string]string, rows ...plan.WorkCategoryPressure) {
	if len(rows) == 0 {
		pp.none()
		return
	}
	over := color.New(color.FgHiRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Category"), bold("Estimate"), bold("Allocated"), bold("Remaining"), bold(""))
	for _, r := range rows {
		name := names[r.WorkCategoryID]
		if name == "" {
			name = r.WorkCategoryID
		}
		flag := ""
		if r.IsOverBooked {
			flag = over.Sprint("overbooked")
		}
		tbl.AddRow(name, hours(r.EstimatedEffortHours), hours(r.AllocatedHours), hours(r.RemainingHours), flag)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
