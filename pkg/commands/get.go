package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	so := &options.SelectionOptions{}
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	kinds := map[string]get.Kind{
		"events":      get.KindEvents,
		"event":       get.KindEvents,
		"categories":  get.KindCategories,
		"category":    get.KindCategories,
		"allocations": get.KindAllocations,
		"allocation":  get.KindAllocations,
	}

	cmd := &cobra.Command{
		Use:   "get [events|categories|allocations]",
		Short: "List planning data inside the active window.",
		Example: `
tempo get events
tempo get categories --event ev-42
tempo get allocations --preset this-month --shift -1
`,
		ValidArgs: []string{"events", "categories", "allocations"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected one dataset, got %d", len(args))
			}
			if len(args) == 1 {
				if _, ok := kinds[args[0]]; !ok {
					return fmt.Errorf("unknown dataset %q", args[0])
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := environment()
			if err != nil {
				return err
			}
			sel, err := e.selection(so)
			if err != nil {
				return err
			}

			kind := get.KindAllocations
			if len(args) == 1 {
				kind = kinds[args[0]]
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

	topLevel.AddCommand(cmd)
}
