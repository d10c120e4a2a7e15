package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions captures the id filters applied before the date window.
type FilterOptions struct {
	EventIDs    []string
	LocationIDs []string
}

// AddFilterArgs wires event and location filters on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringSliceVarP(&o.EventIDs, "event", "e", nil,
		"Only this event id. Repeatable.")
	cmd.Flags().StringSliceVarP(&o.LocationIDs, "location", "l", nil,
		"Only events at this location id. Repeatable.")
}
