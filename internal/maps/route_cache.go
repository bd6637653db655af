package maps

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"droptaxi/internal/types"
)

// Router is the routing collaborator consumed by the fare estimator.
type Router interface {
	GetDistance(ctx context.Context, origin, destination types.Point) (meters, seconds int64, err error)
}

// CachedRouter caches distance results in Redis. Road distance between a
// fixed coordinate pair is stable over the TTL, and the booking form
// re-estimates on every parameter change, so the cache absorbs most calls.
// Cache failures fall through to the underlying router.
type CachedRouter struct {
	next  Router
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedRouter(next Router, rdb *redis.Client, ttl time.Duration) *CachedRouter {
	return &CachedRouter{next: next, redis: rdb, ttl: ttl}
}

func (c *CachedRouter) GetDistance(ctx context.Context, origin, destination types.Point) (int64, int64, error) {
	key := routeKey(origin, destination)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var meters, seconds int64
		if _, err := fmt.Sscanf(val, "%d|%d", &meters, &seconds); err == nil {
			return meters, seconds, nil
		}
	} else if err != redis.Nil {
		log.Printf("route cache: get %s: %v", key, err)
	}

	meters, seconds, err := c.next.GetDistance(ctx, origin, destination)
	if err != nil {
		return 0, 0, err
	}

	if err := c.redis.Set(ctx, key, fmt.Sprintf("%d|%d", meters, seconds), c.ttl).Err(); err != nil {
		log.Printf("route cache: set %s: %v", key, err)
	}
	return meters, seconds, nil
}

// routeKey rounds coordinates to 5 decimal places (~1m) so equal pins from
// the autocomplete widget hit the same entry.
func routeKey(origin, destination types.Point) string {
	return fmt.Sprintf("route:%.5f,%.5f:%.5f,%.5f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}
