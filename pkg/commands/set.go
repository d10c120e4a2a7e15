package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/runner/set"
)

func addSet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <work-category-id> <date> <hours>",
		Short: "Set the effort hours for one category on one day.",
		Long: `Set the effort hours for one work category on one day.

The cell's current state picks the write: an empty cell creates an
allocation, an occupied cell updates it. A rejection from the planning
service leaves the cell untouched and prints the server's reason.`,
		Example: `
tempo set wc-123 2026-03-14 6
tempo set wc-123 2026-03-14 7.5
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := civil.Parse(args[1])
			if err != nil {
				return fmt.Errorf("bad date %q: %w", args[1], err)
			}
			hours, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("bad hours %q: %w", args[2], err)
			}

			e, err := environment()
			if err != nil {
				return err
			}
			s := set.Set{
				WorkCategoryID: args[0],
				Date:           date,
				Hours:          hours,
				Repository:     e.repo,
				Loader:         e.loader(false),
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
