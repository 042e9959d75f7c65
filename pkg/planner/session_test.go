package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/fahrplan-app/fahrplan/pkg/otp"
	"github.com/fahrplan-app/fahrplan/pkg/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanClient struct {
	planFunc func(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error)
	calls    int
}

func (c *stubPlanClient) Plan(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error) {
	c.calls++
	return c.planFunc(ctx, query)
}

func singleItineraryResponse() *otp.PlanResponse {
	return &otp.PlanResponse{
		Plan: &otp.Plan{
			Itineraries: []otp.RawItinerary{{Duration: 1800}},
		},
	}
}

func newTestSession(client PlanClient, history *localstore.SearchHistory) *Session {
	return NewSession(client, NewNormalizer("de", time.UTC), history)
}

func TestSubmitSuccess(t *testing.T) {
	client := &stubPlanClient{
		planFunc: func(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error) {
			return singleItineraryResponse(), nil
		},
	}

	session := newTestSession(client, nil)
	session.SetEndpoints("Hauptbahnhof", "Rathaus")

	itineraries, err := session.Submit(context.Background(), time.Now(), time.Now(), nil)
	require.NoError(t, err)

	require.Len(t, itineraries, 1)
	assert.Equal(t, 30, itineraries[0].DurationMinutes)
	assert.Equal(t, SessionStateSucceeded, session.State())
}

func TestSubmitValidationErrorNeverDispatches(t *testing.T) {
	client := &stubPlanClient{
		planFunc: func(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error) {
			return singleItineraryResponse(), nil
		},
	}

	session := newTestSession(client, nil)
	session.SetEndpoints("", "Rathaus")

	_, err := session.Submit(context.Background(), time.Now(), time.Now(), nil)
	assert.ErrorIs(t, err, trip.ErrMissingOrigin)

	assert.Zero(t, client.calls)
	assert.Equal(t, SessionStateFailed, session.State())
	assert.Empty(t, session.Results())
}

func TestSubmitFailureClearsPreviousResults(t *testing.T) {
	shouldFail := false
	client := &stubPlanClient{
		planFunc: func(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error) {
			if shouldFail {
				return nil, otp.ServiceError{Status: 503}
			}
			return singleItineraryResponse(), nil
		},
	}

	session := newTestSession(client, nil)
	session.SetEndpoints("Hauptbahnhof", "Rathaus")

	_, err := session.Submit(context.Background(), time.Now(), time.Now(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, session.Results())

	shouldFail = true
	_, err = session.Submit(context.Background(), time.Now(), time.Now(), nil)

	var serviceError otp.ServiceError
	require.ErrorAs(t, err, &serviceError)
	assert.Equal(t, 503, serviceError.Status)

	assert.Empty(t, session.Results())
	assert.Equal(t, SessionStateFailed, session.State())
}

func TestSubmitRejectsSecondRequestWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	client := &stubPlanClient{
		planFunc: func(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error) {
			<-release
			return singleItineraryResponse(), nil
		},
	}

	session := newTestSession(client, nil)
	session.SetEndpoints("Hauptbahnhof", "Rathaus")

	firstDone := make(chan error, 1)
	go func() {
		_, err := session.Submit(context.Background(), time.Now(), time.Now(), nil)
		firstDone <- err
	}()

	require.Eventually(t, func() bool {
		return session.State() == SessionStateRequesting
	}, time.Second, time.Millisecond)

	_, err := session.Submit(context.Background(), time.Now(), time.Now(), nil)
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, SessionStateSucceeded, session.State())
}

func TestSubmitRecordsSearchHistory(t *testing.T) {
	client := &stubPlanClient{
		planFunc: func(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error) {
			return nil, errors.New("down")
		},
	}

	history := localstore.NewSearchHistory(localstore.NewMemoryStore())

	session := newTestSession(client, history)
	session.SetEndpoints("Hauptbahnhof", "Rathaus")

	// The search is recorded once validation passes, even when the request fails
	_, err := session.Submit(context.Background(), time.Now(), time.Now(), nil)
	require.Error(t, err)

	entries := history.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Hauptbahnhof", entries[0].Origin)
	assert.Equal(t, "Rathaus", entries[0].Destination)
}

func TestSubmitReturnsDetachedResults(t *testing.T) {
	client := &stubPlanClient{
		planFunc: func(ctx context.Context, query trip.TripQuery) (*otp.PlanResponse, error) {
			return singleItineraryResponse(), nil
		},
	}

	session := newTestSession(client, nil)
	session.SetEndpoints("Hauptbahnhof", "Rathaus")

	itineraries, err := session.Submit(context.Background(), time.Now(), time.Now(), nil)
	require.NoError(t, err)
	require.Len(t, itineraries, 1)

	// Mutating the returned slice must not reach back into the session
	itineraries[0].DurationMinutes = 999

	results := session.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 30, results[0].DurationMinutes)
}

func TestSwapEndpointsTwiceRestoresPair(t *testing.T) {
	session := newTestSession(&stubPlanClient{}, nil)
	session.SetEndpoints("Hauptbahnhof", "Rathaus")

	session.SwapEndpoints()
	origin, destination := session.Endpoints()
	assert.Equal(t, "Rathaus", origin)
	assert.Equal(t, "Hauptbahnhof", destination)

	session.SwapEndpoints()
	origin, destination = session.Endpoints()
	assert.Equal(t, "Hauptbahnhof", origin)
	assert.Equal(t, "Rathaus", destination)
}
