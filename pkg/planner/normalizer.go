package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/fahrplan-app/fahrplan/pkg/otp"
	"github.com/fahrplan-app/fahrplan/pkg/trip"
)

const defaultCurrencySymbol = "€"

// Normalizer maps the raw plan response into the internal itinerary model.
// It never fails - anything missing or malformed degrades to the zero value
// of the field concerned.
type Normalizer struct {
	Locale   string
	Location *time.Location
}

func NewNormalizer(locale string, location *time.Location) Normalizer {
	if locale == "" {
		locale = "en"
	}
	if location == nil {
		location = time.Local
	}

	return Normalizer{
		Locale:   locale,
		Location: location,
	}
}

// Normalize keeps the upstream ordering of itineraries and of the legs within
// each one. An absent plan or itinerary list is "no results", not an error.
func (n Normalizer) Normalize(raw *otp.PlanResponse) []trip.Itinerary {
	itineraries := []trip.Itinerary{}

	if raw == nil || raw.Plan == nil {
		return itineraries
	}

	for index, rawItinerary := range raw.Plan.Itineraries {
		fare := rawItinerary.Fare
		if fare == nil {
			fare = raw.Fare
		}

		// Walk-only itineraries can come back with transfers: -1
		transfers := rawItinerary.Transfers
		if transfers < 0 {
			transfers = 0
		}

		itinerary := trip.Itinerary{
			ID: index + 1,

			DurationMinutes: roundSecondsToMinutes(rawItinerary.Duration),
			TransferCount:   transfers,

			DepartureTime: FormatClock(rawItinerary.StartTime, n.Locale, n.Location),
			ArrivalTime:   FormatClock(rawItinerary.EndTime, n.Locale, n.Location),

			FareDisplay: formatFare(fare),

			Legs: n.normalizeLegs(rawItinerary.Legs),
		}

		itineraries = append(itineraries, itinerary)
	}

	return itineraries
}

func (n Normalizer) normalizeLegs(rawLegs []otp.RawLeg) []trip.Leg {
	legs := make([]trip.Leg, 0, len(rawLegs))

	for _, rawLeg := range rawLegs {
		leg := trip.Leg{
			Mode: normalizeMode(rawLeg.Mode),

			From: rawLeg.From.Name,
			To:   rawLeg.To.Name,

			DurationMinutes: roundSecondsToMinutes(rawLeg.Duration),
		}

		if rawLeg.Distance != nil {
			distance := int(math.Floor(*rawLeg.Distance + 0.5))
			leg.DistanceMeters = &distance
		}

		if rawLeg.Route != nil {
			leg.RouteLabel = rawLeg.Route.ShortName
		}
		if rawLeg.Agency != nil {
			leg.OperatorName = rawLeg.Agency.Name
		}

		legs = append(legs, leg)
	}

	return legs
}

func normalizeMode(token string) trip.TransportMode {
	if mode, known := trip.ParseTransportMode(token); known {
		return mode
	}

	// Anything outside the closed set (SUBWAY, TRAM, FERRY, ...) is still a
	// scheduled service from the user's point of view.
	return trip.TransportModeTransit
}

func formatFare(fare *otp.Fare) string {
	if fare == nil || fare.Fare == nil || fare.Fare.Regular == nil {
		return ""
	}

	regular := fare.Fare.Regular

	symbol := defaultCurrencySymbol
	if regular.Currency != nil && regular.Currency.Symbol != "" {
		symbol = regular.Currency.Symbol
	}

	return fmt.Sprintf("%.2f %s", float64(regular.Cents)/100, symbol)
}

// roundSecondsToMinutes rounds half up, so 930 seconds is 16 minutes.
func roundSecondsToMinutes(seconds float64) int {
	return int(math.Floor(seconds/60 + 0.5))
}
