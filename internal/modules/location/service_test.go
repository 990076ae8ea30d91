package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalpromo/internal/config"
	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/modules/geo"
)

type fakeLive struct {
	fixes map[string]geo.Point
	err   error
	block bool
}

func (f *fakeLive) Update(_ context.Context, agentID string, fix Fix) error {
	if f.fixes == nil {
		f.fixes = map[string]geo.Point{}
	}
	f.fixes[agentID] = fix.Point
	return f.err
}

func (f *fakeLive) Latest(ctx context.Context, agentID string) (geo.Point, bool, error) {
	if f.block {
		<-ctx.Done()
		return geo.Point{}, false, ctx.Err()
	}
	if f.err != nil {
		return geo.Point{}, false, f.err
	}
	p, ok := f.fixes[agentID]
	return p, ok, nil
}

type fakeGeocoder struct {
	calls int
	p     geo.Point
	err   error
}

func (g *fakeGeocoder) Geocode(context.Context, string) (geo.Point, error) {
	g.calls++
	return g.p, g.err
}

func agents() *catalog.MemoryStore {
	s := catalog.NewMemoryStore()
	s.Put(catalog.CollectionAgents, catalog.Record{ID: "a1", Data: map[string]any{"lastKnownLocation": "16.06,108.21"}})
	s.Put(catalog.CollectionAgents, catalog.Record{ID: "a2", Data: map[string]any{"position": map[string]any{"latitude": 21.0, "longitude": 105.8}}})
	s.Put(catalog.CollectionAgents, catalog.Record{ID: "a3", Data: map[string]any{"name": "no position"}})
	return s
}

func cfg() config.LocationConfig {
	return config.LocationConfig{Timeout: time.Second}
}

func TestAcquire_RequestWins(t *testing.T) {
	s := NewService(&fakeLive{}, agents(), nil, cfg())
	got := s.Acquire(context.Background(), "a1", geo.At(1, 2))
	assert.Equal(t, SourceRequest, got.Source)
	assert.Equal(t, geo.Point{Lat: 1, Lng: 2}, got.Position.Value)
}

func TestAcquire_LiveThenLastKnown(t *testing.T) {
	live := &fakeLive{fixes: map[string]geo.Point{"a1": {Lat: 16.1, Lng: 108.3}}}
	s := NewService(live, agents(), nil, cfg())
	ctx := context.Background()

	got := s.Acquire(ctx, "a1", geo.UnknownPosition())
	assert.Equal(t, SourceLive, got.Source)
	assert.Equal(t, 16.1, got.Position.Value.Lat)

	got = s.Acquire(ctx, "a2", geo.UnknownPosition())
	assert.Equal(t, SourceLastKnown, got.Source)
	assert.Equal(t, geo.Point{Lat: 21.0, Lng: 105.8}, got.Position.Value)

	live.err = errors.New("redis down")
	got = s.Acquire(ctx, "a1", geo.UnknownPosition())
	assert.Equal(t, SourceLastKnown, got.Source)
	assert.InDelta(t, 16.06, got.Position.Value.Lat, 1e-9)
}

func TestAcquire_Default(t *testing.T) {
	lat, lng := 16.05, 108.2
	c := cfg()
	c.DefaultLat, c.DefaultLng = &lat, &lng
	s := NewService(nil, agents(), nil, c)

	got := s.Acquire(context.Background(), "a3", geo.UnknownPosition())
	assert.Equal(t, SourceDefault, got.Source)
	assert.Equal(t, geo.Point{Lat: lat, Lng: lng}, got.Position.Value)
}

func TestAcquire_GeocodedDefaultIsCached(t *testing.T) {
	c := cfg()
	c.DefaultAddress = "Da Nang"
	g := &fakeGeocoder{p: geo.Point{Lat: 16.05, Lng: 108.2}}
	s := NewService(nil, nil, g, c)

	for i := 0; i < 3; i++ {
		got := s.Acquire(context.Background(), "", geo.UnknownPosition())
		assert.Equal(t, SourceDefault, got.Source)
	}
	assert.Equal(t, 1, g.calls)
}

func TestAcquire_GeocodeFailureIsUnknown(t *testing.T) {
	c := cfg()
	c.DefaultAddress = "nowhere"
	g := &fakeGeocoder{err: ErrNoGeocodeResult}
	s := NewService(nil, nil, g, c)

	got := s.Acquire(context.Background(), "", geo.UnknownPosition())
	assert.Equal(t, SourceUnknown, got.Source)
	assert.False(t, got.Position.Known)
}

func TestAcquire_TimeoutYieldsUnknown(t *testing.T) {
	lat, lng := 16.05, 108.2
	c := config.LocationConfig{Timeout: 20 * time.Millisecond, DefaultLat: &lat, DefaultLng: &lng}
	s := NewService(&fakeLive{block: true}, agents(), nil, c)

	start := time.Now()
	got := s.Acquire(context.Background(), "a1", geo.UnknownPosition())
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, SourceTimeout, got.Source)
	assert.False(t, got.Position.Known)
}

func TestUpdate(t *testing.T) {
	live := &fakeLive{}
	s := NewService(live, nil, nil, cfg())
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, "a1", Fix{Point: geo.Point{Lat: 16, Lng: 108}}))
	assert.Equal(t, geo.Point{Lat: 16, Lng: 108}, live.fixes["a1"])

	assert.ErrorIs(t, s.Update(ctx, "", Fix{}), ErrMissingAgent)
	assert.ErrorIs(t, s.Update(ctx, "a1", Fix{Point: geo.Point{Lat: 91}}), ErrInvalidFix)
	assert.ErrorIs(t, NewService(nil, nil, nil, cfg()).Update(ctx, "a1", Fix{Point: geo.Point{Lat: 1, Lng: 1}}), ErrLiveDisabled)
}
