package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/eval"
)

func addEval(topLevel *cobra.Command) {
	so := &options.SelectionOptions{}
	fo := &options.FilterOptions{}
	var eventID string
	var fresh bool

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Show demand, capacity, and pressure aggregates.",
		Long: `Show the planning service's evaluation aggregates: demand hours per
day, demand against capacity, and per-category booking pressure. The
numbers come from the service as-is; this tool never recomputes them.`,
		Example: `
tempo eval
tempo eval --fresh --for ev-42
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
			ev := eval.Eval{
				EventID:     eventID,
				Fresh:       fresh,
				Repository:  e.repo,
				Loader:      e.loader(false),
				Selection:   sel,
				EventIDs:    fo.EventIDs,
				LocationIDs: fo.LocationIDs,
			}
			return oo.HandleError(ev.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&eventID, "for", "",
		"Scope the evaluation fetch to one event id.")
	cmd.Flags().BoolVar(&fresh, "fresh", false,
		"Fetch aggregates from the service instead of the cache.")
	options.AddSelectionArgs(cmd, so)
	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
