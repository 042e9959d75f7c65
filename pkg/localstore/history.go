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

const historyKey = "recentSearches"
const historyLimit = 5

// SearchHistory is the bounded most-recent-first log of submitted searches.
// Construct it once per process - it owns the persisted document for its key.
// Safe for concurrent use; the web API shares one instance across handlers.
type SearchHistory struct {
	mutex sync.Mutex

	store   Store
	entries []trip.SearchHistoryEntry
}

// NewSearchHistory loads any persisted history from the store. A missing or
// unparseable document just means an empty history.
func NewSearchHistory(store Store) *SearchHistory {
	history := &SearchHistory{
		store: store,
	}

	document, err := store.Get(context.Background(), historyKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Warn().Err(err).Msg("Failed to load search history, starting empty")
		}
		return history
	}

	if err := json.Unmarshal(document, &history.entries); err != nil {
		log.Warn().Err(err).Msg("Stored search history is corrupt, starting empty")
		history.entries = nil
	}

	return history
}

// Record inserts the search at the front, dropping any previous entry for the
// exact same origin/destination pair and anything beyond the capacity. The
// updated history is persisted before Record returns.
func (h *SearchHistory) Record(origin string, destination string) ([]trip.SearchHistoryEntry, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	util.InPlaceFilter(&h.entries, func(entry trip.SearchHistoryEntry) bool {
		return entry.Origin != origin || entry.Destination != destination
	})

	entry := trip.SearchHistoryEntry{
		Origin:      origin,
		Destination: destination,
		Timestamp:   time.Now(),
	}
	h.entries = append([]trip.SearchHistoryEntry{entry}, h.entries...)

	if len(h.entries) > historyLimit {
		h.entries = h.entries[:historyLimit]
	}

	if err := h.persist(); err != nil {
		return nil, err
	}

	return h.copyEntries(), nil
}

// Clear empties the history and persists the empty document.
func (h *SearchHistory) Clear() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.entries = nil

	return h.persist()
}

// Entries returns a copy, most recent first.
func (h *SearchHistory) Entries() []trip.SearchHistoryEntry {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return h.copyEntries()
}

func (h *SearchHistory) copyEntries() []trip.SearchHistoryEntry {
	entries := make([]trip.SearchHistoryEntry, len(h.entries))
	copy(entries, h.entries)

	return entries
}

func (h *SearchHistory) persist() error {
	document, err := json.Marshal(h.entriesOrEmpty())
	if err != nil {
		return err
	}

	return h.store.Set(context.Background(), historyKey, document)
}

func (h *SearchHistory) entriesOrEmpty() []trip.SearchHistoryEntry {
	if h.entries == nil {
		return []trip.SearchHistoryEntry{}
	}

	return h.entries
}
