package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/lanes"
)

func addLanes(topLevel *cobra.Command) {
	so := &options.SelectionOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Show each event's categories stacked into display lanes.",
		Long: `Show each event's work categories packed into horizontal lanes.
Categories whose date ranges overlap never share a lane; each category
lands in the first lane that can hold it.`,
		Example: `
tempo lanes
tempo lanes --year 2026 --unlocked
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
			l := lanes.Lanes{
				Loader:      e.loader(false),
				Selection:   sel,
				EventIDs:    fo.EventIDs,
				LocationIDs: fo.LocationIDs,
			}
			return oo.HandleError(l.Do(context.Background()))
		},
	}

	options.AddSelectionArgs(cmd, so)
	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
