// Package load assembles planning snapshots from the cache or the planning
// service.
package load

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/cache"
	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/remote"
)

// Loader fetches snapshots, preferring cached data unless Refresh is set.
type Loader struct {
	Repository remote.Repository
	Cache      *cache.Store
	Refresh    bool
}

// Snapshot returns the planning snapshot. Cached data is used when present;
// otherwise (or when Refresh is set) everything is fetched from the service
// and cached for the next read.
func (l *Loader) Snapshot(ctx context.Context) (plan.Snapshot, error) {
	if l.Cache != nil && !l.Refresh {
		snap, err := l.Cache.LoadSnapshot()
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, cache.ErrEmpty) {
			return plan.Snapshot{}, err
		}
	}
	return l.pull(ctx)
}

func (l *Loader) pull(ctx context.Context) (plan.Snapshot, error) {
	if l.Repository == nil {
		return plan.Snapshot{}, errors.New("load: no snapshot cached and no planning service configured")
	}

	var snap plan.Snapshot
	var err error
	if snap.Events, err = l.Repository.Events(ctx); err != nil {
		return plan.Snapshot{}, fmt.Errorf("load: events: %w", err)
	}
	if snap.Locations, err = l.Repository.Locations(ctx); err != nil {
		return plan.Snapshot{}, fmt.Errorf("load: locations: %w", err)
	}
	if snap.EventLocations, err = l.Repository.EventLocations(ctx); err != nil {
		return plan.Snapshot{}, fmt.Errorf("load: event locations: %w", err)
	}
	if snap.WorkCategories, err = l.Repository.WorkCategories(ctx, ""); err != nil {
		return plan.Snapshot{}, fmt.Errorf("load: work categories: %w", err)
	}
	if snap.Allocations, err = l.Repository.Allocations(ctx); err != nil {
		return plan.Snapshot{}, fmt.Errorf("load: allocations: %w", err)
	}
	if snap.Evaluation, err = l.Repository.Evaluation(ctx, ""); err != nil {
		return plan.Snapshot{}, fmt.Errorf("load: evaluation: %w", err)
	}

	if l.Cache != nil {
		if err := l.Cache.SaveSnapshot(snap); err != nil {
			return plan.Snapshot{}, err
		}
	}
	return snap, nil
}
