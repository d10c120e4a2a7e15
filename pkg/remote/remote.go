// Package remote talks JSON over HTTP to the planning service. It is the
// only place allocations are created, updated, or deleted; this tool never
// invents ids.
package remote

import (
	"context"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/plan"
)

// AllocationChange is the write body for creating or updating an allocation.
type AllocationChange struct {
	EventID        string     `json:"eventId"`
	WorkCategoryID string     `json:"workCategoryId"`
	Date           civil.Date `json:"date"`
	EffortValue    float64    `json:"effortValue"`
	EffortUnit     string     `json:"effortUnit"`
}

// Repository is the remote contract the planner depends on.
type Repository interface {
	Events(ctx context.Context) ([]plan.Event, error)
	Locations(ctx context.Context) ([]plan.Location, error)
	EventLocations(ctx context.Context) ([]plan.EventLocation, error)

	// WorkCategories lists categories, optionally scoped to one event.
	// An empty eventID lists across all events.
	WorkCategories(ctx context.Context, eventID string) ([]plan.WorkCategory, error)

	Allocations(ctx context.Context) ([]plan.Allocation, error)
	CreateAllocation(ctx context.Context, change AllocationChange) (plan.Allocation, error)
	UpdateAllocation(ctx context.Context, id string, change AllocationChange) (plan.Allocation, error)
	DeleteAllocation(ctx context.Context, id string) error

	// Evaluation fetches the advisory aggregates, optionally per event.
	Evaluation(ctx context.Context, eventID string) (plan.Evaluation, error)
}
