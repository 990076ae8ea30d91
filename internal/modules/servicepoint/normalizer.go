// README: Entity normalizer merging company stations and private providers.
package servicepoint

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rentalpromo/internal/modules/catalog"
)

// Options restricts which owners contribute service points.
type Options struct {
	// RestrictToActive drops points whose owner record has isActive=false.
	// A station whose owner record is missing counts as active.
	RestrictToActive bool
	// AllowOwners, when non-empty, is the only owner filter applied;
	// RestrictToActive is then ignored.
	AllowOwners map[string]bool
}

func (o Options) allows(ownerID string, owner catalog.Record, found bool) bool {
	if len(o.AllowOwners) > 0 {
		return o.AllowOwners[ownerID]
	}
	if o.RestrictToActive && found {
		return owner.Bool("isActive", true)
	}
	return true
}

// Snapshot is the raw input of Normalize.
type Snapshot struct {
	Companies []catalog.Record
	Stations  []catalog.Record
	Providers []catalog.Record
}

// Normalize merges real stations and station-less providers into one list.
// Stations come first in input order, then synthetic provider points.
// Duplicate ids keep the first occurrence.
func Normalize(snap Snapshot, opts Options) []ServicePoint {
	owners := make(map[string]catalog.Record, len(snap.Companies)+len(snap.Providers))
	for _, r := range snap.Companies {
		owners[r.ID] = r
	}
	for _, r := range snap.Providers {
		if _, ok := owners[r.ID]; !ok {
			owners[r.ID] = r
		}
	}
	names := make(map[string]string, len(owners))
	for id, r := range owners {
		names[id] = OwnerName(r)
	}

	seen := make(map[string]struct{})
	hasStation := make(map[string]bool)
	out := make([]ServicePoint, 0, len(snap.Stations)+len(snap.Providers))

	add := func(sp ServicePoint) {
		if sp.ID == "" {
			return
		}
		if _, dup := seen[sp.ID]; dup {
			return
		}
		seen[sp.ID] = struct{}{}
		out = append(out, sp)
	}

	for _, st := range snap.Stations {
		ownerID := st.String(stationOwnerFields...)
		if ownerID != "" {
			hasStation[ownerID] = true
		}
		owner, found := owners[ownerID]
		if !opts.allows(ownerID, owner, found) {
			continue
		}
		add(ServicePoint{
			ID:               st.ID,
			Kind:             KindCompanyStation,
			OwnerID:          ownerID,
			OwnerDisplayName: names[ownerID],
			Name:             st.String(stationNameFields...),
			DisplayAddress:   st.String(addressFields...),
			Position:         st.Position(),
		})
	}

	for _, p := range snap.Providers {
		if hasStation[p.ID] {
			continue
		}
		if !opts.allows(p.ID, p, true) {
			continue
		}
		name := names[p.ID]
		add(ServicePoint{
			ID:               p.ID,
			Kind:             KindPrivateProvider,
			OwnerID:          p.ID,
			OwnerDisplayName: name,
			Name:             name,
			DisplayAddress:   p.String(addressFields...),
			Position:         p.Position(),
		})
	}
	return out
}

// Load scans the three owner/station collections concurrently. Any failed
// scan fails the load; the caller decides how to surface it.
func Load(ctx context.Context, store catalog.Store) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Companies, err = store.ListAll(gctx, catalog.CollectionCompanies)
		return err
	})
	g.Go(func() (err error) {
		snap.Stations, err = store.ListAll(gctx, catalog.CollectionStations)
		return err
	})
	g.Go(func() (err error) {
		snap.Providers, err = store.ListAll(gctx, catalog.CollectionProviders)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
