// Package plan defines the planning domain: events, work categories, daily
// effort allocations, and the filter pipeline that narrows them to the
// active window.
package plan

import (
	"tableflip.dev/tempo/pkg/civil"
)

// EventStatus is the lifecycle state reported by the planning service.
type EventStatus string

// StatusActive marks events that participate in planning. Everything else
// is ignored by this tool.
const StatusActive EventStatus = "ACTIVE"

// Event is a planning window owning work categories.
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartDate civil.Date  `json:"startDate"`
	EndDate   civil.Date  `json:"endDate"`
	Status    EventStatus `json:"status"`
	Phases    []Phase     `json:"phases,omitempty"`
}

// Phase is a named sub-window of an event. Phase bounds may extend past the
// event's own dates and widen its effective range.
type Phase struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate civil.Date `json:"startDate"`
	EndDate   civil.Date `json:"endDate"`
}

// EffectiveRange returns the event's date bounds widened by its phases.
func (e Event) EffectiveRange() (civil.Date, civil.Date) {
	start, end := e.StartDate, e.EndDate
	for _, p := range e.Phases {
		if !p.StartDate.IsZero() {
			start = civil.Min(start, p.StartDate)
		}
		if !p.EndDate.IsZero() {
			end = civil.Max(end, p.EndDate)
		}
	}
	return start, end
}

// Location is a venue referenced by events.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventLocation links an event to a location.
type EventLocation struct {
	ID         string `json:"id"`
	EventID    string `json:"eventId"`
	LocationID string `json:"locationId"`
}

// WorkCategory is a bucket of planned effort within an event. The estimate
// is read-only input here; the planning service owns it.
type WorkCategory struct {
	ID                   string  `json:"id"`
	EventID              string  `json:"eventId"`
	Name                 string  `json:"name"`
	EstimatedEffortHours float64 `json:"estimatedEffortHours"`
}

// Allocation is a committed record of hours assigned to a work category on
// one specific date. At most one exists per (workCategoryId, date); the
// planning service invents all ids.
type Allocation struct {
	ID             string     `json:"id"`
	EventID        string     `json:"eventId"`
	WorkCategoryID string     `json:"workCategoryId"`
	Date           civil.Date `json:"date"`
	EffortHours    float64    `json:"effortHours"`
}

// DailyDemand is a pre-aggregated demand row from the evaluation endpoint.
type DailyDemand struct {
	Date             civil.Date `json:"date"`
	TotalEffortHours float64    `json:"totalEffortHours"`
}

// DailyCapacityComparison compares demand against capacity for one day.
type DailyCapacityComparison struct {
	Date             civil.Date `json:"date"`
	DemandHours      float64    `json:"demandHours"`
	CapacityHours    float64    `json:"capacityHours"`
	IsOverAllocated  bool       `json:"isOverAllocated"`
	IsUnderAllocated bool       `json:"isUnderAllocated"`
}

// WorkCategoryPressure reports how booked a category is against its
// estimate.
type WorkCategoryPressure struct {
	WorkCategoryID       string  `json:"workCategoryId"`
	EstimatedEffortHours float64 `json:"estimatedEffortHours"`
	AllocatedHours       float64 `json:"allocatedHours"`
	RemainingHours       float64 `json:"remainingHours"`
	IsOverBooked         bool    `json:"isOverBooked"`
}

// Evaluation bundles the advisory aggregates. They are re-fetched after
// every successful mutation and never recomputed locally.
type Evaluation struct {
	DailyDemand             []DailyDemand             `json:"dailyDemand"`
	DailyCapacityComparison []DailyCapacityComparison `json:"dailyCapacityComparison"`
	WorkCategoryPressure    []WorkCategoryPressure    `json:"workCategoryPressure,omitempty"`
}

// Snapshot is a fully-settled read of all planning data. Filtering always
// runs against one of these; nothing mutates it.
type Snapshot struct {
	Events         []Event
	Locations      []Location
	EventLocations []EventLocation
	WorkCategories []WorkCategory
	Allocations    []Allocation
	Evaluation     Evaluation
}
