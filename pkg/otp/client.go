package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fahrplan-app/fahrplan/pkg/trip"
	"github.com/rs/zerolog/log"
)

const planPath = "/otp/routers/default/plan"

type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("trip planner unreachable: %s", e.Err.Error())
}

func (e TransportError) Unwrap() error {
	return e.Err
}

type ServiceError struct {
	Status int
}

func (e ServiceError) Error() string {
	return fmt.Sprintf("trip planner returned status %d", e.Status)
}

// Client issues plan requests against an OpenTripPlanner compatible endpoint.
// It carries no per-request state and is safe to share.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: http.DefaultClient,
	}
}

// Plan performs a single GET against the plan endpoint. The decoded body is
// returned as-is - whether it actually contains any itineraries is for the
// normalizer to decide.
func (c *Client) Plan(ctx context.Context, query trip.TripQuery) (*PlanResponse, error) {
	parameters := url.Values{}
	parameters.Set("fromPlace", query.Origin)
	parameters.Set("toPlace", query.Destination)
	parameters.Set("date", query.Date.Format("2006-01-02"))
	parameters.Set("time", query.Time.Format("15:04"))
	parameters.Set("mode", query.ModeTokens())
	parameters.Set("locale", query.Locale)
	parameters.Set("numItineraries", strconv.Itoa(query.ResultCount))

	requestURL := c.Endpoint + planPath + "?" + parameters.Encode()

	log.Debug().Str("url", requestURL).Msg("Requesting trip plan")

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, TransportError{Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, ServiceError{Status: resp.StatusCode}
	}

	var planResponse PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&planResponse); err != nil {
		return nil, TransportError{Err: err}
	}

	return &planResponse, nil
}
