package trip

import (
	"strings"
	"time"
)

const DefaultResultCount = 3

// DefaultModes is applied when the caller does not pick any modes explicitly.
var DefaultModes = []TransportMode{TransportModeTransit, TransportModeWalk}

type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return "missing " + e.Field
}

var (
	ErrMissingOrigin      = ValidationError{Field: "origin"}
	ErrMissingDestination = ValidationError{Field: "destination"}
)

// TripQuery is the validated, defaulted form of a user trip request. It is a
// plain value - once built it is never mutated.
type TripQuery struct {
	Origin      string
	Destination string

	Date time.Time
	Time time.Time

	Modes       []TransportMode
	ResultCount int
	Locale      string
}

// BuildQuery validates the endpoints and applies the defaults. Origin and
// destination only need to be non-empty after trimming, nothing else about
// them is checked here.
func BuildQuery(origin string, destination string, date time.Time, clock time.Time, modes []TransportMode, locale string) (TripQuery, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" {
		return TripQuery{}, ErrMissingOrigin
	}
	if destination == "" {
		return TripQuery{}, ErrMissingDestination
	}

	if len(modes) == 0 {
		modes = DefaultModes
	}
	if locale == "" {
		locale = "en"
	}

	return TripQuery{
		Origin:      origin,
		Destination: destination,
		Date:        date,
		Time:        clock,
		Modes:       modes,
		ResultCount: DefaultResultCount,
		Locale:      locale,
	}, nil
}

// Swapped returns a copy of the query with origin and destination exchanged.
func (q TripQuery) Swapped() TripQuery {
	swapped := q
	swapped.Origin = q.Destination
	swapped.Destination = q.Origin

	return swapped
}

// ModeTokens renders the mode set as the comma separated parameter value the
// trip planning service expects.
func (q TripQuery) ModeTokens() string {
	tokens := make([]string, len(q.Modes))
	for i, mode := range q.Modes {
		tokens[i] = string(mode)
	}

	return strings.Join(tokens, ",")
}
