package servicepoint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalpromo/internal/modules/catalog"
)

func rec(id string, data map[string]any) catalog.Record {
	return catalog.Record{ID: id, Data: data}
}

func fixture() Snapshot {
	return Snapshot{
		Companies: []catalog.Record{
			rec("c1", map[string]any{"name": "Da Nang Wheels"}),
			rec("c2", map[string]any{"companyName": "Hoi An Rides", "isActive": false}),
		},
		Stations: []catalog.Record{
			rec("s1", map[string]any{"companyId": "c1", "name": "Beach", "address": "1 Vo Nguyen Giap", "location": map[string]any{"lat": 16.07, "lng": 108.22}}),
			rec("s2", map[string]any{"companyId": "c2", "name": "Old Town", "location": "15.88,108.33"}),
			rec("s3", map[string]any{"ownerId": "p2", "name": "Garage"}),
			rec("s1", map[string]any{"companyId": "c1", "name": "Duplicate"}),
		},
		Providers: []catalog.Record{
			rec("p1", map[string]any{"fullName": "Nguyen Van A", "address": "Son Tra", "lat": 16.1, "lng": 108.25}),
			rec("p2", map[string]any{"displayName": "Tran Thi B"}),
			rec("p3", map[string]any{"name": "Inactive Rider", "isActive": false}),
		},
	}
}

func byID(points []ServicePoint) map[string]ServicePoint {
	out := make(map[string]ServicePoint, len(points))
	for _, p := range points {
		out[p.ID] = p
	}
	return out
}

func TestNormalize_MergesStationsAndProviders(t *testing.T) {
	points := Normalize(fixture(), Options{})

	ids := make([]string, len(points))
	for i, p := range points {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"s1", "s2", "s3", "p1", "p3"}, ids)

	m := byID(points)
	assert.Equal(t, KindCompanyStation, m["s1"].Kind)
	assert.Equal(t, "Da Nang Wheels", m["s1"].OwnerDisplayName)
	assert.Equal(t, "Beach", m["s1"].Name)
	assert.Equal(t, "1 Vo Nguyen Giap", m["s1"].DisplayAddress)
	assert.True(t, m["s1"].Position.Known)

	assert.Equal(t, "Tran Thi B", m["s3"].OwnerDisplayName)
	assert.False(t, m["s3"].Position.Known)

	p1 := m["p1"]
	assert.Equal(t, KindPrivateProvider, p1.Kind)
	assert.Equal(t, "p1", p1.OwnerID)
	assert.Equal(t, "Nguyen Van A", p1.OwnerDisplayName)
	require.True(t, p1.Position.Known)
	assert.InDelta(t, 16.1, p1.Position.Value.Lat, 1e-9)
}

func TestNormalize_ProviderWithStationIsNotSynthesized(t *testing.T) {
	m := byID(Normalize(fixture(), Options{}))
	_, synthetic := m["p2"]
	assert.False(t, synthetic)
	assert.Equal(t, "p2", m["s3"].OwnerID)
}

func TestNormalize_RestrictToActive(t *testing.T) {
	m := byID(Normalize(fixture(), Options{RestrictToActive: true}))
	assert.Contains(t, m, "s1")
	assert.NotContains(t, m, "s2")
	assert.NotContains(t, m, "p3")
	assert.Contains(t, m, "s3")
}

func TestNormalize_AllowSetWinsOverActivity(t *testing.T) {
	points := Normalize(fixture(), Options{
		RestrictToActive: true,
		AllowOwners:      map[string]bool{"c2": true, "p3": true},
	})
	m := byID(points)
	assert.Len(t, m, 2)
	assert.Contains(t, m, "s2")
	assert.Contains(t, m, "p3")
}

func TestNormalize_UnknownOwner(t *testing.T) {
	points := Normalize(Snapshot{
		Stations: []catalog.Record{rec("s9", map[string]any{"companyId": "gone"})},
	}, Options{RestrictToActive: true})
	require.Len(t, points, 1)
	assert.Equal(t, "", points[0].OwnerDisplayName)
}

func TestLoad(t *testing.T) {
	store := catalog.NewMemoryStore()
	snap := fixture()
	for _, r := range snap.Companies {
		store.Put(catalog.CollectionCompanies, r)
	}
	for _, r := range snap.Providers {
		store.Put(catalog.CollectionProviders, r)
	}
	store.Put(catalog.CollectionStations, snap.Stations[0])

	got, err := Load(context.Background(), store)
	require.NoError(t, err)
	assert.Len(t, got.Companies, 2)
	assert.Len(t, got.Stations, 1)
	assert.Len(t, got.Providers, 3)

	store.Fail = func(c catalog.Call) error {
		if c.Collection == catalog.CollectionStations {
			return errors.New("unavailable")
		}
		return nil
	}
	_, err = Load(context.Background(), store)
	assert.Error(t, err)
}
