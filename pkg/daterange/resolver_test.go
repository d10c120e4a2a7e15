package daterange

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/tempo/pkg/civil"
)

var today = civil.MustParse("2024-08-15") // a Thursday

func TestPresetTable(t *testing.T) {
	cases := []struct {
		preset    Preset
		wantStart string
		wantEnd   string
		wantOpen  bool
	}{
		{PresetAllTime, "", "", true},
		{PresetThisWeek, "2024-08-12", "2024-08-18", false},
		{PresetNext2Weeks, "2024-08-15", "2024-08-29", false},
		{PresetThisMonth, "2024-08-01", "2024-08-31", false},
		{PresetNext3Months, "2024-08-15", "2024-11-13", false},
		{PresetNext6Months, "2024-08-15", "2025-02-11", false},
		{PresetThisYear, "2024-01-01", "2024-12-31", false},
	}
	for _, tc := range cases {
		s := NewSelection()
		s.SetPreset(tc.preset)
		got := s.Active(today)
		if tc.wantOpen {
			if got.Bounded() {
				t.Errorf("%s: expected unbounded range, got %s..%s", tc.preset, got.Start, got.End)
			}
			continue
		}
		if got.Start.String() != tc.wantStart || got.End.String() != tc.wantEnd {
			t.Errorf("%s: got %s..%s, want %s..%s", tc.preset, got.Start, got.End, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestThisMonthOffset(t *testing.T) {
	s := NewSelection()
	s.SetPreset(PresetThisMonth)
	s.ShiftMonth(-1)
	got := s.Active(today)
	if got.Start.String() != "2024-07-01" || got.End.String() != "2024-07-31" {
		t.Fatalf("got %s..%s, want 2024-07-01..2024-07-31", got.Start, got.End)
	}
	s.ShiftMonth(2) // net +1
	got = s.Active(today)
	if got.Start.String() != "2024-09-01" || got.End.String() != "2024-09-30" {
		t.Fatalf("got %s..%s, want 2024-09-01..2024-09-30", got.Start, got.End)
	}
}

func TestMonthOffsetIgnoredByOtherPresets(t *testing.T) {
	s := NewSelection()
	s.SetPreset(PresetThisMonth)
	s.ShiftMonth(-1)
	s.SetPreset(PresetThisWeek)
	got := s.Active(today)
	if got.Start.String() != "2024-08-12" {
		t.Fatalf("offset leaked into this-week: got start %s", got.Start)
	}
}

func TestCustomRangeVerbatim(t *testing.T) {
	s := NewSelection()
	want := Range{Start: civil.MustParse("2024-03-03"), End: civil.MustParse("2024-04-04")}
	s.SetCustom(want)
	if got := s.Active(today); got != want {
		t.Fatalf("got %s..%s, want %s..%s", got.Start, got.End, want.Start, want.End)
	}
	if s.Source() != SourceCustom {
		t.Fatalf("expected custom source")
	}
}

func TestYearMonthResolution(t *testing.T) {
	s := NewSelection()
	s.SetYear(2023)
	got := s.Active(today)
	if got.Start.String() != "2023-01-01" || got.End.String() != "2023-12-31" {
		t.Fatalf("year only: got %s..%s", got.Start, got.End)
	}
	s.SetMonth(time.February)
	got = s.Active(today)
	if got.Start.String() != "2023-02-01" || got.End.String() != "2023-02-28" {
		t.Fatalf("year+month: got %s..%s", got.Start, got.End)
	}
}

func TestSettersAssignSource(t *testing.T) {
	s := NewSelection()
	s.SetYear(2023)
	s.SetMonth(time.May)
	s.SetPreset(PresetThisWeek)
	if s.Source() != SourcePreset {
		t.Fatalf("SetPreset should switch the source")
	}
	if s.Year() != 0 || s.Month() != 0 {
		t.Fatalf("SetPreset should clear year/month, got %d/%d", s.Year(), s.Month())
	}

	s.SetYear(2022)
	if s.Source() != SourceYearMonth {
		t.Fatalf("SetYear should switch the source regardless of prior preset")
	}

	s.SetPreset(PresetNext2Weeks)
	s.SetMonth(time.March)
	if s.Source() != SourceYearMonth {
		t.Fatalf("SetMonth should switch the source regardless of prior preset")
	}
}

func TestUnavailableYearFallsBackToPreset(t *testing.T) {
	s := NewSelection()
	s.SetPreset(PresetThisWeek)
	s.SetAvailableYears([]int{2024, 2025})
	s.SetYear(2019)
	if s.Year() != 0 {
		t.Fatalf("guard should clear an unavailable year immediately")
	}
	got := s.Active(today)
	if got.Start.String() != "2024-08-12" {
		t.Fatalf("expected this-week fallback, got %s..%s", got.Start, got.End)
	}
}

func TestAvailableYearsChangeReclearsSelection(t *testing.T) {
	s := NewSelection()
	s.SetAvailableYears([]int{2023, 2024})
	s.SetYear(2023)
	s.SetMonth(time.June)

	// Upstream filters changed and 2023 vanished; the guard must fire
	// without any user action.
	s.SetAvailableYears([]int{2024})
	if s.Year() != 0 || s.Month() != 0 {
		t.Fatalf("expected year and month cleared, got %d/%d", s.Year(), s.Month())
	}
	if s.Source() != SourcePreset {
		t.Fatalf("expected source reverted to preset")
	}
}

func TestEmptyAvailableYearsDisablesGuard(t *testing.T) {
	s := NewSelection()
	s.SetAvailableYears(nil)
	s.SetYear(1999)
	got := s.Active(today)
	if got.Start.String() != "1999-01-01" || got.End.String() != "1999-12-31" {
		t.Fatalf("empty availableYears must not reject a year: got %s..%s", got.Start, got.End)
	}
}

func TestViewRangeLocked(t *testing.T) {
	s := NewSelection()
	s.SetPreset(PresetThisWeek)
	if s.View(today) != s.Active(today) {
		t.Fatalf("locked view must equal the active range")
	}
}

func TestViewRangeUnlockedAnchors(t *testing.T) {
	s := NewSelection()
	s.SetLocked(false)

	// Anchor on the selected year.
	s.SetAvailableYears([]int{2022, 2024})
	s.SetYear(2022)
	got := s.View(today)
	if got.Start.String() != "2022-01-01" || got.End.String() != "2022-12-31" {
		t.Fatalf("selected-year anchor: got %s..%s", got.Start, got.End)
	}

	// Anchor on the active range's start year.
	s.ClearYearMonth()
	s.SetCustom(Range{Start: civil.MustParse("2022-06-01"), End: civil.MustParse("2022-06-30")})
	got = s.View(today)
	if got.Start.Year != 2022 {
		t.Fatalf("active-start anchor: got year %d", got.Start.Year)
	}

	// All-time active range, today's year available.
	s.SetPreset(PresetAllTime)
	got = s.View(today)
	if got.Start.Year != 2024 {
		t.Fatalf("today anchor: got year %d", got.Start.Year)
	}

	// Today's year unavailable: fall back to the most recent available year.
	s.SetAvailableYears([]int{2021, 2022})
	got = s.View(today)
	if got.Start.Year != 2022 {
		t.Fatalf("latest-available anchor: got year %d", got.Start.Year)
	}
}

func TestMaterialize(t *testing.T) {
	r := Range{Start: civil.MustParse("2024-02-27"), End: civil.MustParse("2024-03-02")}
	days, err := Materialize(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}
	if days[2].String() != "2024-02-29" {
		t.Fatalf("expected leap day in sequence, got %s", days[2])
	}
}

func TestMaterializeReversed(t *testing.T) {
	r := Range{Start: civil.MustParse("2024-06-10"), End: civil.MustParse("2024-06-01")}
	days, err := Materialize(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("reversed range should be empty, got %d days", len(days))
	}
}

func TestMaterializeBudget(t *testing.T) {
	r := Range{Start: civil.MustParse("1900-01-01"), End: civil.MustParse("2100-01-01")}
	_, err := Materialize(r)
	if !errors.Is(err, ErrWalkBudget) {
		t.Fatalf("expected ErrWalkBudget, got %v", err)
	}
}

func TestMaterializeUnbounded(t *testing.T) {
	if _, err := Materialize(Range{}); err == nil {
		t.Fatalf("expected error for unbounded range")
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" This-Month ")
	if err != nil || p != PresetThisMonth {
		t.Fatalf("got %q, %v", p, err)
	}
	if _, err := ParsePreset("fortnightly"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	p, err = ParsePreset("")
	if err != nil || p != PresetAllTime {
		t.Fatalf("empty input should default to all-time, got %q, %v", p, err)
	}
}
