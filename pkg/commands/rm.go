package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/rm"
)

func addRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <allocation-id>",
		Short:   "Delete a committed allocation.",
		Aliases: []string{"delete", "remove"},
		Example: `
tempo rm alloc-8d2f
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := environment()
			if err != nil {
				return err
			}
			r := rm.Rm{
				AllocationID: args[0],
				Repository:   e.repo,
				Loader:       e.loader(false),
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
