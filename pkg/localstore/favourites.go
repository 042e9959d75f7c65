package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/fahrplan-app/fahrplan/pkg/trip"
	"github.com/fahrplan-app/fahrplan/pkg/util"
	"github.com/rs/zerolog/log"
)

const favouritesKey = "favorites"

// Favourites is the persisted list of saved routes. Unlike the search history
// it is not deduplicated - saving the same pair twice keeps two entries.
// Safe for concurrent use; the web API shares one instance across handlers.
type Favourites struct {
	mutex sync.Mutex

	store  Store
	routes []trip.FavoriteRoute

	lastIssuedID int64
}

func NewFavourites(store Store) *Favourites {
	favourites := &Favourites{
		store: store,
	}

	document, err := store.Get(context.Background(), favouritesKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Warn().Err(err).Msg("Failed to load favourites, starting empty")
		}
		return favourites
	}

	if err := json.Unmarshal(document, &favourites.routes); err != nil {
		log.Warn().Err(err).Msg("Stored favourites are corrupt, starting empty")
		favourites.routes = nil
	}

	for _, route := range favourites.routes {
		if route.ID > favourites.lastIssuedID {
			favourites.lastIssuedID = route.ID
		}
	}

	return favourites
}

// Add appends a favourite with a fresh time-derived identifier, strictly
// greater than anything issued before, and persists the full list.
func (f *Favourites) Add(origin string, destination string) (trip.FavoriteRoute, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	id := time.Now().UnixMilli()
	if id <= f.lastIssuedID {
		id = f.lastIssuedID + 1
	}
	f.lastIssuedID = id

	route := trip.FavoriteRoute{
		ID:          id,
		Origin:      origin,
		Destination: destination,
	}
	f.routes = append(f.routes, route)

	if err := f.persist(); err != nil {
		return trip.FavoriteRoute{}, err
	}

	return route, nil
}

// Remove deletes the route with the given identifier. Removing an identifier
// that does not exist is a no-op.
func (f *Favourites) Remove(id int64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	before := len(f.routes)

	util.InPlaceFilter(&f.routes, func(route trip.FavoriteRoute) bool {
		return route.ID != id
	})

	if len(f.routes) == before {
		return nil
	}

	return f.persist()
}

// Routes returns a copy in insertion order.
func (f *Favourites) Routes() []trip.FavoriteRoute {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	routes := make([]trip.FavoriteRoute, len(f.routes))
	copy(routes, f.routes)

	return routes
}

func (f *Favourites) persist() error {
	routes := f.routes
	if routes == nil {
		routes = []trip.FavoriteRoute{}
	}

	document, err := json.Marshal(routes)
	if err != nil {
		return err
	}

	return f.store.Set(context.Background(), favouritesKey, document)
}
