package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/fahrplan-app/fahrplan/pkg/redis_client"
	"github.com/fahrplan-app/fahrplan/pkg/trip"
)

// ResultCache keeps recently normalized plan results so identical queries
// arriving close together skip the upstream round trip. Cache problems are
// never surfaced - a miss just means a live request.
type ResultCache struct {
	Cache *cache.Cache[string]
}

func (c *ResultCache) Setup() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(90*time.Second))

	c.Cache = cache.New[string](redisStore)
}

func QueryCacheKey(query trip.TripQuery) string {
	return fmt.Sprintf(
		"PLAN:%s:%s:%s:%s:%s:%d:%s",
		query.Origin,
		query.Destination,
		query.Date.Format("2006-01-02"),
		query.Time.Format("15:04"),
		query.ModeTokens(),
		query.ResultCount,
		query.Locale,
	)
}

func (c *ResultCache) Get(query trip.TripQuery) ([]trip.Itinerary, bool) {
	if c == nil || c.Cache == nil {
		return nil, false
	}

	cacheValue, err := c.Cache.Get(context.Background(), QueryCacheKey(query))
	if err != nil {
		return nil, false
	}

	var itineraries []trip.Itinerary
	if err := json.Unmarshal([]byte(cacheValue), &itineraries); err != nil {
		return nil, false
	}

	return itineraries, true
}

func (c *ResultCache) Put(query trip.TripQuery, itineraries []trip.Itinerary) {
	if c == nil || c.Cache == nil {
		return
	}

	itinerariesJSON, err := json.Marshal(itineraries)
	if err != nil {
		return
	}

	c.Cache.Set(context.Background(), QueryCacheKey(query), string(itinerariesJSON))
}
