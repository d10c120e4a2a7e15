// Package printers renders planning data for the terminal.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tempo/pkg/plan"
)

type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" row")
	default:
		_, _ = c.Println(" rows")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

func (pp *PrettyPrint) Events(events ...plan.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Event"), bold("From"), bold("To"), bold("Phases"))
	} else {
		tbl.AddRow(bold("Event"), bold("From"), bold("To"), bold("Phases"))
	}
	for _, e := range events {
		start, end := e.EffectiveRange()
		if pp.ShowID {
			tbl.AddRow(e.ID, e.Name, start.String(), end.String(), len(e.Phases))
		} else {
			tbl.AddRow(e.Name, start.String(), end.String(), len(e.Phases))
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) WorkCategories(categories ...plan.WorkCategory) {
	if len(categories) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Category"), bold("Event"), bold("Estimate"))
	} else {
		tbl.AddRow(bold("Category"), bold("Event"), bold("Estimate"))
	}
	for _, wc := range categories {
		if pp.ShowID {
			tbl.AddRow(wc.ID, wc.Name, wc.EventID, hours(wc.EstimatedEffortHours))
		} else {
			tbl.AddRow(wc.Name, wc.EventID, hours(wc.EstimatedEffortHours))
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) Allocations(names map[string]string, allocations ...plan.Allocation) {
	if len(allocations) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Date"), bold("Category"), bold("Hours"))
	} else {
		tbl.AddRow(bold("Date"), bold("Category"), bold("Hours"))
	}
	for _, a := range allocations {
		name := names[a.WorkCategoryID]
		if name == "" {
			name = a.WorkCategoryID
		}
		if pp.ShowID {
			tbl.AddRow(a.ID, a.Date.String(), name, hours(a.EffortHours))
		} else {
			tbl.AddRow(a.Date.String(), name, hours(a.EffortHours))
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func hours(v float64) string {
	return fmt.Sprintf("%gh", v)
}
