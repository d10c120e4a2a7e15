package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SelectionOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Edit allocations in an interactive grid.",
		Long: `Open a grid of work categories by day for the visible window. Move
with the arrow keys, press enter to draft hours for a cell, enter again
to save, esc to throw the draft away, d to delete the cell's
allocation.`,
		Example: `
tempo ui
tempo ui --preset this-month --event ev-42
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
			u := ui.UI{
				Repository:  e.repo,
				Loader:      e.loader(false),
				Selection:   sel,
				EventIDs:    fo.EventIDs,
				LocationIDs: fo.LocationIDs,
			}
			return oo.HandleError(u.Do(context.Background()))
		},
	}

	options.AddSelectionArgs(cmd, so)
	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
