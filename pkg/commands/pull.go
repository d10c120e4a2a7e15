package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/pull"
)

func addPull(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Refresh the local snapshot cache from the planning service.",
		Example: `
tempo pull
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := environment()
			if err != nil {
				return err
			}
			p := pull.Pull{
				Repository: e.repo,
				Cache:      e.cache,
			}
			return oo.HandleError(p.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
