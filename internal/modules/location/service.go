// README: Location service: requester position fallback chain and live updates.
package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"rentalpromo/internal/config"
	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/modules/geo"
	"rentalpromo/internal/observability"
	"rentalpromo/internal/types"
)

var (
	ErrLiveDisabled  = errors.New("location: live position store not configured")
	ErrInvalidFix    = errors.New("location: coordinates out of range")
	ErrMissingAgent  = errors.New("location: agent id required")
	defaultAcquireTO = 3 * time.Second
)

type LiveStore interface {
	Update(ctx context.Context, agentID string, fix Fix) error
	Latest(ctx context.Context, agentID string) (geo.Point, bool, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}

type Service struct {
	live     LiveStore
	catalog  catalog.Store
	geocoder Geocoder
	cfg      config.LocationConfig

	mu         sync.Mutex
	geocodedAt geo.Position // cached geocode of cfg.DefaultAddress
}

// NewService wires the chain. live and geocoder may be nil.
func NewService(live LiveStore, store catalog.Store, geocoder Geocoder, cfg config.LocationConfig) *Service {
	return &Service{live: live, catalog: store, geocoder: geocoder, cfg: cfg}
}

// Acquire resolves the requester position: an explicit request position,
// then the agent's live fix, then the last-known position on the agent
// record, then the configured default. The whole chain runs under the
// configured timeout; on timeout the position is Unknown.
func (s *Service) Acquire(ctx context.Context, agentID string, requested geo.Position) Acquired {
	res := s.acquire(ctx, agentID, requested)
	observability.PositionSourceTotal.WithLabelValues(string(res.Source)).Inc()
	return res
}

func (s *Service) acquire(ctx context.Context, agentID string, requested geo.Position) Acquired {
	if requested.Known {
		return Acquired{Position: requested, Source: SourceRequest}
	}

	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAcquireTO
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	timedOut := func() bool {
		if ctx.Err() != nil {
			zap.L().Warn("position acquisition timed out", zap.String("agent_id", agentID), zap.Duration("timeout", timeout))
			return true
		}
		return false
	}

	if agentID != "" {
		if p, ok := s.liveFix(ctx, agentID); ok {
			return Acquired{Position: types.Known(p), Source: SourceLive}
		}
		if timedOut() {
			return Acquired{Position: geo.UnknownPosition(), Source: SourceTimeout}
		}
		if p := s.lastKnown(ctx, agentID); p.Known {
			return Acquired{Position: p, Source: SourceLastKnown}
		}
		if timedOut() {
			return Acquired{Position: geo.UnknownPosition(), Source: SourceTimeout}
		}
	}

	if p := s.defaultPosition(ctx); p.Known {
		return Acquired{Position: p, Source: SourceDefault}
	}
	if timedOut() {
		return Acquired{Position: geo.UnknownPosition(), Source: SourceTimeout}
	}
	return Acquired{Position: geo.UnknownPosition(), Source: SourceUnknown}
}

func (s *Service) liveFix(ctx context.Context, agentID string) (geo.Point, bool) {
	if s.live == nil {
		return geo.Point{}, false
	}
	p, ok, err := s.live.Latest(ctx, agentID)
	if err != nil {
		zap.L().Debug("live position unavailable", zap.String("agent_id", agentID), zap.Error(err))
		return geo.Point{}, false
	}
	return p, ok && p.Valid()
}

func (s *Service) lastKnown(ctx context.Context, agentID string) geo.Position {
	if s.catalog == nil {
		return geo.UnknownPosition()
	}
	recs, err := s.catalog.GetByIDs(ctx, catalog.CollectionAgents, []string{agentID})
	if err != nil || len(recs) == 0 {
		if err != nil {
			zap.L().Debug("agent record unavailable", zap.String("agent_id", agentID), zap.Error(err))
		}
		return geo.UnknownPosition()
	}
	rec := recs[0]
	for _, k := range lastKnownFields {
		if v := rec.Raw(k); v != nil {
			if p := geo.Resolve(v); p.Known {
				return p
			}
		}
	}
	return rec.Position()
}

func (s *Service) defaultPosition(ctx context.Context) geo.Position {
	if s.cfg.DefaultLat != nil && s.cfg.DefaultLng != nil {
		return geo.At(*s.cfg.DefaultLat, *s.cfg.DefaultLng)
	}
	if s.cfg.DefaultAddress == "" || s.geocoder == nil {
		return geo.UnknownPosition()
	}
	s.mu.Lock()
	cached := s.geocodedAt
	s.mu.Unlock()
	if cached.Known {
		return cached
	}

	p, err := s.geocoder.Geocode(ctx, s.cfg.DefaultAddress)
	if err != nil {
		zap.L().Warn("default address not geocoded", zap.String("address", s.cfg.DefaultAddress), zap.Error(err))
		return geo.UnknownPosition()
	}
	pos := geo.At(p.Lat, p.Lng)
	if pos.Known {
		s.mu.Lock()
		s.geocodedAt = pos
		s.mu.Unlock()
	}
	return pos
}

// Update stores a device fix reported by agentID.
func (s *Service) Update(ctx context.Context, agentID string, fix Fix) error {
	if agentID == "" {
		return ErrMissingAgent
	}
	if !fix.Point.Valid() {
		return ErrInvalidFix
	}
	if s.live == nil {
		return ErrLiveDisabled
	}
	if fix.RecordedAt.IsZero() {
		fix.RecordedAt = time.Now()
	}
	return s.live.Update(ctx, agentID, fix)
}
