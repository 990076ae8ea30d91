// README: Live agent position store backed by Redis GEO plus a freshness key.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"rentalpromo/internal/modules/geo"
)

const (
	agentGeoKey        = "location:agents"
	freshnessKeyFormat = "location:agent:%s:updated_at"
	defaultLiveTTL     = 10 * time.Minute
)

type RedisLiveStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisLiveStore keeps fixes fresh for ttl; older fixes are ignored.
func NewRedisLiveStore(redis *redis.Client, ttl time.Duration) *RedisLiveStore {
	if ttl <= 0 {
		ttl = defaultLiveTTL
	}
	return &RedisLiveStore{redis: redis, ttl: ttl}
}

func freshnessKey(agentID string) string {
	return fmt.Sprintf(freshnessKeyFormat, agentID)
}

func (s *RedisLiveStore) Update(ctx context.Context, agentID string, fix Fix) error {
	pipe := s.redis.TxPipeline()
	pipe.GeoAdd(ctx, agentGeoKey, &redis.GeoLocation{
		Name:      agentID,
		Longitude: fix.Point.Lng,
		Latitude:  fix.Point.Lat,
	})
	pipe.Set(ctx, freshnessKey(agentID), fix.RecordedAt.UTC().Format(time.RFC3339Nano), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrapf(err, "location: store live fix for %s", agentID)
	}
	return nil
}

// Latest returns the agent's live fix if one was stored within the TTL.
func (s *RedisLiveStore) Latest(ctx context.Context, agentID string) (geo.Point, bool, error) {
	err := s.redis.Get(ctx, freshnessKey(agentID)).Err()
	if errors.Is(err, redis.Nil) {
		return geo.Point{}, false, nil
	}
	if err != nil {
		return geo.Point{}, false, eris.Wrapf(err, "location: read freshness for %s", agentID)
	}

	positions, err := s.redis.GeoPos(ctx, agentGeoKey, agentID).Result()
	if err != nil {
		return geo.Point{}, false, eris.Wrapf(err, "location: geopos %s", agentID)
	}
	if len(positions) == 0 || positions[0] == nil {
		return geo.Point{}, false, nil
	}
	return geo.Point{Lat: positions[0].Latitude, Lng: positions[0].Longitude}, true, nil
}
