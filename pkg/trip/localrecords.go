package trip

import "time"

// SearchHistoryEntry records a submitted search. Two entries are the same
// search when both endpoints match exactly, case sensitive.
type SearchHistoryEntry struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Timestamp   time.Time `json:"timestamp"`
}

type FavoriteRoute struct {
	ID          int64  `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}
