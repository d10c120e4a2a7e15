// Package daterange resolves the active planning window from the user's
// range selection and materializes windows into daily sequences.
package daterange

import (
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/civil"
)

// Range is an inclusive calendar window. The zero value is unbounded and
// means "all time".
type Range struct {
	Start civil.Date
	End   civil.Date
}

// Bounded reports whether the range carries explicit endpoints.
func (r Range) Bounded() bool {
	return !r.Start.IsZero() || !r.End.IsZero()
}

// Contains reports whether d falls inside the range. An unbounded range
// contains every date.
func (r Range) Contains(d civil.Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// Intersects reports whether the inclusive window [start,end] overlaps the
// range.
func (r Range) Intersects(start, end civil.Date) bool {
	if !r.Start.IsZero() && end.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && start.After(r.End) {
		return false
	}
	return true
}

// WalkBudget caps Materialize iterations so a malformed or reversed range
// cannot spin forever.
const WalkBudget = 20000

// ErrWalkBudget is returned when a materialized range exceeds WalkBudget days.
var ErrWalkBudget = errors.New("daterange: walk budget exceeded")

// Materialize expands a bounded range into its inclusive daily sequence.
// A reversed range yields an empty sequence; an unbounded range is an error
// because it has no finite expansion.
func Materialize(r Range) ([]civil.Date, error) {
	if !r.Bounded() {
		return nil, errors.New("daterange: cannot materialize an unbounded range")
	}
	days := make([]civil.Date, 0, 32)
	for d := r.Start; !d.After(r.End); d = d.Next() {
		if len(days) >= WalkBudget {
			return nil, fmt.Errorf("%w: %s..%s exceeds %d days", ErrWalkBudget, r.Start, r.End, WalkBudget)
		}
		if len(days) > 0 && !days[len(days)-1].Before(d) {
			return nil, fmt.Errorf("daterange: non-monotonic step at %s", d)
		}
		days = append(days, d)
	}
	return days, nil
}
