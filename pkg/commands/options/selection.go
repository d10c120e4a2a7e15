// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/daterange"
)

// SelectionOptions captures the date-window flags shared by every command
// that reads planning data.
type SelectionOptions struct {
	Preset     string
	From       string
	To         string
	Year       int
	Month      int
	ShiftMonth int
	AnyYear    bool
	Unlocked   bool
	Locked     bool
}

// AddSelectionArgs wires the window flags on the provided command.
func AddSelectionArgs(cmd *cobra.Command, o *SelectionOptions) {
	presets := make([]string, 0, len(daterange.AllPresets()))
	for _, p := range daterange.AllPresets() {
		presets = append(presets, string(p))
	}

	cmd.Flags().StringVarP(&o.Preset, "preset", "p", "",
		"Date window preset. One of "+strings.Join(presets, ", ")+".")
	cmd.Flags().StringVar(&o.From, "from", "",
		"Custom window start (YYYY-MM-DD).")
	cmd.Flags().StringVar(&o.To, "to", "",
		"Custom window end (YYYY-MM-DD).")
	cmd.Flags().IntVarP(&o.Year, "year", "y", 0,
		"Pin the window to one calendar year.")
	cmd.Flags().IntVarP(&o.Month, "month", "m", 0,
		"Pin the window to one month (1-12) of the selected year.")
	cmd.Flags().IntVar(&o.ShiftMonth, "shift", 0,
		"Shift a month window forward or back by this many months.")
	cmd.Flags().BoolVar(&o.AnyYear, "any-year", false,
		"Drop the year and month pins.")
	cmd.Flags().BoolVar(&o.Unlocked, "unlocked", false,
		"Let the visible window drift to a whole year around the selection.")
	cmd.Flags().BoolVar(&o.Locked, "locked", false,
		"Keep the visible window identical to the active window.")
}

// Apply folds the flags into a selection. Flags the user did not pass leave
// the selection as it was, so a persisted window carries between runs.
func (o *SelectionOptions) Apply(sel *daterange.Selection) error {
	if o.From != "" || o.To != "" {
		r := daterange.Range{}
		var err error
		if o.From != "" {
			if r.Start, err = civil.Parse(o.From); err != nil {
				return fmt.Errorf("options: --from: %w", err)
			}
		}
		if o.To != "" {
			if r.End, err = civil.Parse(o.To); err != nil {
				return fmt.Errorf("options: --to: %w", err)
			}
		}
		sel.SetCustom(r)
	}
	if o.Preset != "" {
		p, err := daterange.ParsePreset(o.Preset)
		if err != nil {
			return err
		}
		sel.SetPreset(p)
	}
	if o.AnyYear {
		sel.ClearYearMonth()
	}
	if o.Year != 0 {
		sel.SetYear(o.Year)
	}
	if o.Month != 0 {
		if o.Month < 1 || o.Month > 12 {
			return fmt.Errorf("options: --month %d out of range", o.Month)
		}
		sel.SetMonth(time.Month(o.Month))
	}
	if o.ShiftMonth != 0 {
		sel.ShiftMonth(o.ShiftMonth)
	}
	if o.Unlocked {
		sel.SetLocked(false)
	}
	if o.Locked {
		sel.SetLocked(true)
	}
	return nil
}
