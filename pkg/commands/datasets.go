package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/get"
)

// addEvents and addCategories are shorthands for the get datasets.

func addEvents(topLevel *cobra.Command) {
	topLevel.AddCommand(datasetCommand("events", get.KindEvents,
		"List events whose dates touch the active window."))
}

func addCategories(topLevel *cobra.Command) {
	topLevel.AddCommand(datasetCommand("categories", get.KindCategories,
		"List work categories of the surviving events."))
}

func datasetCommand(use string, kind get.Kind, short string) *cobra.Command {
	so := &options.SelectionOptions{}
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: `
tempo ` + use + `
tempo ` + use + ` --preset this-year --location loc-7
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
			g := get.Get{
				Kind:        kind,
				ShowID:      io.ShowID,
				Loader:      e.loader(false),
				Selection:   sel,
				EventIDs:    fo.EventIDs,
				LocationIDs: fo.LocationIDs,
			}
			return oo.HandleError(g.Do(context.Background()))
		},
	}

	options.AddSelectionArgs(cmd, so)
	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	return cmd
}
