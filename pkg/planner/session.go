package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/fahrplan-app/fahrplan/pkg/otp"
	"github.com/fahrplan-app/fahrplan/pkg/trip"
	"github.com/rs/zerolog/log"
)

type SessionState string

const (
	SessionStateIdle       SessionState = "Idle"
	SessionStateRequesting SessionState = "Requesting"
	SessionStateSucceeded  SessionState = "Succeeded"
	SessionStateFailed     SessionState = "Failed"
)

var ErrRequestInFlight = errors.New("a trip plan request is already in flight")

type PlanClient interface {
	Plan(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error)
}

// Session drives one logical user's plan requests through the
// Idle -> Requesting -> Succeeded/Failed cycle. At most one request is in
// flight; a Submit while Requesting is rejected without touching any state.
type Session struct {
	mutex sync.Mutex

	state   SessionState
	results []trip.Itinerary

	origin      string
	destination string

	client     PlanClient
	normalizer Normalizer
	history    *localstore.SearchHistory
}

func NewSession(client PlanClient, normalizer Normalizer, history *localstore.SearchHistory) *Session {
	return &Session{
		state:      SessionStateIdle,
		client:     client,
		normalizer: normalizer,
		history:    history,
	}
}

func (s *Session) SetEndpoints(origin string, destination string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.origin = origin
	s.destination = destination
}

// SwapEndpoints exchanges origin and destination. Swapping twice restores the
// original pair.
func (s *Session) SwapEndpoints() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.origin, s.destination = s.destination, s.origin
}

func (s *Session) Endpoints() (string, string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.origin, s.destination
}

func (s *Session) State() SessionState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.state
}

func (s *Session) Results() []trip.Itinerary {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	results := make([]trip.Itinerary, len(s.results))
	copy(results, s.results)

	return results
}

// Submit runs the full pipeline for the session's current endpoints: build the
// query, record the search, dispatch, normalize. A validation failure never
// reaches the network layer. Every failure clears the current result list -
// an empty itinerary list from the service is a success, not a failure.
func (s *Session) Submit(ctx context.Context, date time.Time, clock time.Time, modes []trip.TransportMode) ([]trip.Itinerary, error) {
	s.mutex.Lock()

	if s.state == SessionStateRequesting {
		s.mutex.Unlock()
		return nil, ErrRequestInFlight
	}

	query, err := trip.BuildQuery(s.origin, s.destination, date, clock, modes, s.normalizer.Locale)
	if err != nil {
		s.results = nil
		s.state = SessionStateFailed
		s.mutex.Unlock()
		return nil, err
	}

	s.state = SessionStateRequesting
	s.mutex.Unlock()

	if s.history != nil {
		if _, err := s.history.Record(query.Origin, query.Destination); err != nil {
			log.Warn().Err(err).Msg("Failed to record search history")
		}
	}

	raw, err := s.client.Plan(ctx, query)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err != nil {
		s.results = nil
		s.state = SessionStateFailed
		return nil, err
	}

	s.results = s.normalizer.Normalize(raw)
	s.state = SessionStateSucceeded

	results := make([]trip.Itinerary, len(s.results))
	copy(results, s.results)

	return results, nil
}
