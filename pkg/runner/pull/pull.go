// Package pull refreshes the local snapshot cache from the planning service.
package pull

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/cache"
	"tableflip.dev/tempo/pkg/remote"
	"tableflip.dev/tempo/pkg/runner/load"
)

type Pull struct {
	Repository remote.Repository
	Cache      *cache.Store
}

// Do fetches everything from the planning service and replaces the cache.
func (p *Pull) Do(ctx context.Context) error {
	if p.Repository == nil {
		return errors.New("can not pull, no planning service configured")
	}

	loader := load.Loader{Repository: p.Repository, Cache: p.Cache, Refresh: true}
	snap, err := loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	f := color.New(color.Faint)
	fmt.Printf("pulled %d events, %d work categories, %d allocations\n",
		len(snap.Events), len(snap.WorkCategories), len(snap.Allocations))
	if p.Cache != nil {
		_, _ = f.Printf("cached at %s\n", p.Cache.BasePath())
	}
	return nil
}
