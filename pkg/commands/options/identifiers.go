package options

import (
	"github.com/spf13/cobra"
)

// IDOptions controls whether record ids are shown in listings.
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs registers the id visibility flag.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "show-ids", false,
		"Show record ids in the output.")
}
