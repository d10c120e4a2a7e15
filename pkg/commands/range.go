package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/daterange"
)

func addRange(topLevel *cobra.Command) {
	so := &options.SelectionOptions{}

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show or change the persisted date window.",
		Long: `Show the date window every other command filters by. Any window flag
changes the selection and persists it for later runs.`,
		Example: `
tempo range
tempo range --preset next-3-months
tempo range --year 2026 --month 3
tempo range --from 2026-03-01 --to 2026-03-14
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := environment()
			if err != nil {
				return err
			}
			sel, err := e.selection(so)
			if err != nil {
				return err
			}

			today := civil.Today()
			b := color.New(color.Bold)
			f := color.New(color.Faint)

			switch sel.Source() {
			case daterange.SourceCustom:
				_, _ = b.Println("custom window")
			case daterange.SourceYearMonth:
				if sel.Month() != 0 {
					_, _ = b.Printf("%s %d\n", sel.Month(), sel.Year())
				} else {
					_, _ = b.Printf("year %d\n", sel.Year())
				}
			default:
				_, _ = b.Println(string(sel.Preset()))
			}

			fmt.Printf("active  %s\n", formatRange(sel.Active(today)))
			fmt.Printf("visible %s\n", formatRange(sel.View(today)))
			if !sel.Locked() {
				_, _ = f.Println("window is unlocked, the visible range drifts to a full year")
			}
			return nil
		},
	}

	options.AddSelectionArgs(cmd, so)

	topLevel.AddCommand(cmd)
}

func formatRange(r daterange.Range) string {
	start, end := "beginning", "open"
	if !r.Start.IsZero() {
		start = r.Start.String()
	}
	if !r.End.IsZero() {
		end = r.End.String()
	}
	return start + " to " + end
}
