package otp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fahrplan-app/fahrplan/pkg/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuery(t *testing.T) trip.TripQuery {
	t.Helper()

	date := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	clock := time.Date(0, 1, 1, 8, 30, 0, 0, time.UTC)

	query, err := trip.BuildQuery("Hauptbahnhof", "Rathaus", date, clock, nil, "de")
	require.NoError(t, err)

	return query
}

func TestPlanEncodesRequestParameters(t *testing.T) {
	var requestPath string
	var parameters url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		parameters = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Plan(context.Background(), testQuery(t))
	require.NoError(t, err)

	assert.Equal(t, "/otp/routers/default/plan", requestPath)
	assert.Equal(t, "Hauptbahnhof", parameters.Get("fromPlace"))
	assert.Equal(t, "Rathaus", parameters.Get("toPlace"))
	assert.Equal(t, "2024-05-17", parameters.Get("date"))
	assert.Equal(t, "08:30", parameters.Get("time"))
	assert.Equal(t, "TRANSIT,WALK", parameters.Get("mode"))
	assert.Equal(t, "de", parameters.Get("locale"))
	assert.Equal(t, "3", parameters.Get("numItineraries"))
}

func TestPlanDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"plan": {
				"itineraries": [
					{
						"duration": 1800,
						"transfers": 1,
						"startTime": 1715935800000,
						"endTime": 1715937600000,
						"legs": [
							{"mode": "WALK", "from": {"name": "Hauptbahnhof"}, "to": {"name": "Oberer Markt"}, "duration": 300},
							{"mode": "BUS", "from": {"name": "Oberer Markt"}, "to": {"name": "Rathaus"}, "duration": 1500, "distance": 4210.4, "route": {"shortName": "561"}, "agency": {"name": "Stadtwerke"}}
						]
					}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	response, err := client.Plan(context.Background(), testQuery(t))
	require.NoError(t, err)

	require.NotNil(t, response.Plan)
	require.Len(t, response.Plan.Itineraries, 1)

	itinerary := response.Plan.Itineraries[0]
	assert.Equal(t, float64(1800), itinerary.Duration)
	assert.Equal(t, 1, itinerary.Transfers)
	require.Len(t, itinerary.Legs, 2)
	assert.Equal(t, "561", itinerary.Legs[1].Route.ShortName)
	assert.Equal(t, "Stadtwerke", itinerary.Legs[1].Agency.Name)
}

func TestPlanServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Plan(context.Background(), testQuery(t))
	require.Error(t, err)

	var serviceError ServiceError
	require.ErrorAs(t, err, &serviceError)
	assert.Equal(t, http.StatusInternalServerError, serviceError.Status)
}

func TestPlanTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)

	_, err := client.Plan(context.Background(), testQuery(t))
	require.Error(t, err)

	var transportError TransportError
	assert.ErrorAs(t, err, &transportError)
}
