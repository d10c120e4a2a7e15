package daterange

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tempo/pkg/civil"
)

// Source discriminates which control most recently drove the selection.
// Setters assign it explicitly; resolution never infers intent from call
// order.
type Source int

const (
	// SourcePreset resolves through the named preset table.
	SourcePreset Source = iota
	// SourceCustom uses the stored custom range verbatim.
	SourceCustom
	// SourceYearMonth resolves an explicit year and optional month.
	SourceYearMonth
)

// Preset names a window relative to the current day.
type Preset string

const (
	PresetAllTime     Preset = "all-time"
	PresetThisWeek    Preset = "this-week"
	PresetNext2Weeks  Preset = "next-2-weeks"
	PresetThisMonth   Preset = "this-month"
	PresetNext3Months Preset = "next-3-months"
	PresetNext6Months Preset = "next-6-months"
	PresetThisYear    Preset = "this-year"
	PresetCustom      Preset = "custom"
)

// AllPresets returns the supported preset names in display order.
func AllPresets() []Preset {
	return []Preset{
		PresetAllTime,
		PresetThisWeek,
		PresetNext2Weeks,
		PresetThisMonth,
		PresetNext3Months,
		PresetNext6Months,
		PresetThisYear,
		PresetCustom,
	}
}

// ParsePreset converts a string to a Preset or returns an error for unknown
// values. The empty string maps to all-time.
func ParsePreset(raw string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PresetAllTime, nil
	}
	for _, candidate := range AllPresets() {
		if candidate == p {
			return candidate, nil
		}
	}
	return PresetAllTime, fmt.Errorf("daterange: unknown preset %q", raw)
}

// Selection holds the user's window controls. The zero value selects
// all-time with range locking enabled.
type Selection struct {
	source      Source
	preset      Preset
	custom      Range
	year        int        // 0 means unset
	month       time.Month // 0 means unset
	monthOffset int

	locked         bool
	availableYears []int
}

// NewSelection returns a Selection resolving to all-time with locking on.
func NewSelection() *Selection {
	return &Selection{preset: PresetAllTime, locked: true}
}

// Source returns the active discriminator.
func (s *Selection) Source() Source { return s.source }

// Preset returns the last-used preset. It stays meaningful after switching
// to year-month so fallback resolution has something to revert to.
func (s *Selection) Preset() Preset { return s.preset }

// Year returns the selected year, or 0 when unset.
func (s *Selection) Year() int { return s.year }

// Month returns the selected month, or 0 when unset.
func (s *Selection) Month() time.Month { return s.month }

// MonthOffset returns the this-month shift in months.
func (s *Selection) MonthOffset() int { return s.monthOffset }

// Locked reports whether the resolved range filters data or only anchors
// the browsing view.
func (s *Selection) Locked() bool { return s.locked }

// SetLocked toggles range locking.
func (s *Selection) SetLocked(locked bool) { s.locked = locked }

// SetPreset switches to the given preset, clearing any year/month selection
// and resetting the month offset.
func (s *Selection) SetPreset(p Preset) {
	s.source = SourcePreset
	s.preset = p
	s.year = 0
	s.month = 0
	s.monthOffset = 0
}

// SetCustom stores an explicit range and makes it the active source.
func (s *Selection) SetCustom(r Range) {
	s.source = SourceCustom
	s.preset = PresetCustom
	s.custom = r
}

// Custom returns the stored custom range.
func (s *Selection) Custom() Range { return s.custom }

// SetYear selects a year and switches the source to year-month regardless of
// any prior preset.
func (s *Selection) SetYear(year int) {
	s.source = SourceYearMonth
	s.year = year
	s.applyYearGuard()
}

// SetMonth selects a month within the selected year and switches the source
// to year-month.
func (s *Selection) SetMonth(m time.Month) {
	s.source = SourceYearMonth
	s.month = m
}

// ClearYearMonth drops the year-month selection and reverts to the last
// preset.
func (s *Selection) ClearYearMonth() {
	s.year = 0
	s.month = 0
	s.source = SourcePreset
}

// ShiftMonth adjusts the this-month offset by delta months. Only meaningful
// while the this-month preset is active.
func (s *Selection) ShiftMonth(delta int) {
	s.monthOffset += delta
}

// SetAvailableYears records which years exist in the unfiltered event set
// and re-applies the year guard: a selected year that is no longer available
// is cleared even if the user did nothing.
func (s *Selection) SetAvailableYears(years []int) {
	s.availableYears = append(s.availableYears[:0], years...)
	s.applyYearGuard()
}

// AvailableYears returns the recorded year set.
func (s *Selection) AvailableYears() []int {
	return append([]int(nil), s.availableYears...)
}

func (s *Selection) applyYearGuard() {
	if s.year == 0 || len(s.availableYears) == 0 {
		return
	}
	for _, y := range s.availableYears {
		if y == s.year {
			return
		}
	}
	s.year = 0
	s.month = 0
	s.source = SourcePreset
}

// Active resolves the effective filter window for the given current day.
func (s *Selection) Active(today civil.Date) Range {
	switch s.source {
	case SourceYearMonth:
		if s.year == 0 {
			return s.resolvePreset(today)
		}
		if len(s.availableYears) > 0 && !containsInt(s.availableYears, s.year) {
			return s.resolvePreset(today)
		}
		if s.month == 0 {
			return yearRange(s.year)
		}
		return Range{
			Start: civil.Date{Year: s.year, Month: s.month, Day: 1},
			End:   civil.Date{Year: s.year, Month: s.month, Day: civil.DaysInMonth(s.year, s.month)},
		}
	case SourceCustom:
		return s.custom
	default:
		return s.resolvePreset(today)
	}
}

// View resolves the timeline window. With locking enabled it equals Active;
// otherwise it is the full calendar year containing the anchor so the user
// can browse without disturbing the filtered set.
func (s *Selection) View(today civil.Date) Range {
	if s.locked {
		return s.Active(today)
	}
	return yearRange(s.anchorYear(today))
}

// anchorYear picks the year whose timeline should be shown: the selected
// year, then the active range's start year, then today's year when it is
// available, then the most recent available year.
func (s *Selection) anchorYear(today civil.Date) int {
	if s.year != 0 {
		return s.year
	}
	if active := s.Active(today); !active.Start.IsZero() {
		return active.Start.Year
	}
	if len(s.availableYears) == 0 || containsInt(s.availableYears, today.Year) {
		return today.Year
	}
	latest := s.availableYears[0]
	for _, y := range s.availableYears[1:] {
		if y > latest {
			latest = y
		}
	}
	return latest
}

func (s *Selection) resolvePreset(today civil.Date) Range {
	switch s.preset {
	case PresetThisWeek:
		start := today.WeekStart()
		return Range{Start: start, End: start.AddDays(6)}
	case PresetNext2Weeks:
		return Range{Start: today, End: today.AddDays(14)}
	case PresetThisMonth:
		anchor := today.AddMonths(s.monthOffset)
		return Range{Start: anchor.MonthStart(), End: anchor.MonthEnd()}
	case PresetNext3Months:
		return Range{Start: today, End: today.AddDays(90)}
	case PresetNext6Months:
		return Range{Start: today, End: today.AddDays(180)}
	case PresetThisYear:
		return Range{Start: today.YearStart(), End: today.YearEnd()}
	case PresetCustom:
		return s.custom
	default: // all-time
		return Range{}
	}
}

// State is the serializable form of a Selection, used to persist the
// last-used window between sessions.
type State struct {
	Source      Source     `json:"source"`
	Preset      Preset     `json:"preset,omitempty"`
	Custom      Range      `json:"custom,omitempty"`
	Year        int        `json:"year,omitempty"`
	Month       time.Month `json:"month,omitempty"`
	MonthOffset int        `json:"monthOffset,omitempty"`
	Locked      bool       `json:"locked"`
}

// State captures the selection for persistence. Available years are runtime
// data and are not included.
func (s *Selection) State() State {
	return State{
		Source:      s.source,
		Preset:      s.preset,
		Custom:      s.custom,
		Year:        s.year,
		Month:       s.month,
		MonthOffset: s.monthOffset,
		Locked:      s.locked,
	}
}

// FromState restores a persisted selection. The year guard re-applies once
// SetAvailableYears is called with current data.
func FromState(st State) *Selection {
	sel := NewSelection()
	sel.source = st.Source
	if st.Preset != "" {
		sel.preset = st.Preset
	}
	sel.custom = st.Custom
	sel.year = st.Year
	sel.month = st.Month
	sel.monthOffset = st.MonthOffset
	sel.locked = st.Locked
	return sel
}

func yearRange(year int) Range {
	return Range{
		Start: civil.Date{Year: year, Month: time.January, Day: 1},
		End:   civil.Date{Year: year, Month: time.December, Day: 31},
	}
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
