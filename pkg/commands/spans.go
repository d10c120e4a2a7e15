package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/spans"
)

func addSpans(topLevel *cobra.Command) {
	so := &options.SelectionOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "spans",
		Short: "Show contiguous allocation runs per work category.",
		Long: `Show each work category's allocations merged into maximal runs of
consecutive days, with the summed hours per run.`,
		Example: `
tempo spans
tempo spans --preset next-2-weeks --event ev-42
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
			s := spans.Spans{
				Loader:      e.loader(false),
				Selection:   sel,
				EventIDs:    fo.EventIDs,
				LocationIDs: fo.LocationIDs,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddSelectionArgs(cmd, so)
	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
