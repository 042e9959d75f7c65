package otp

// Raw response shapes for the plan endpoint. Only the fields the normalizer
// consumes are bound - everything else in the upstream document is ignored.
// Shape validation deliberately does not happen here.

type PlanResponse struct {
	Plan *Plan `json:"plan"`
	Fare *Fare `json:"fare"`
}

type Plan struct {
	Itineraries []RawItinerary `json:"itineraries"`
}

type RawItinerary struct {
	Duration  float64 `json:"duration"` // seconds
	Transfers int     `json:"transfers"`

	StartTime int64 `json:"startTime"` // epoch milliseconds
	EndTime   int64 `json:"endTime"`

	Legs []RawLeg `json:"legs"`

	Fare *Fare `json:"fare"`
}

type RawLeg struct {
	Mode string `json:"mode"`

	From RawPlace `json:"from"`
	To   RawPlace `json:"to"`

	Duration float64  `json:"duration"` // seconds
	Distance *float64 `json:"distance"` // meters

	Route  *RawRoute  `json:"route"`
	Agency *RawAgency `json:"agency"`
}

type RawPlace struct {
	Name string `json:"name"`
}

type RawRoute struct {
	ShortName string `json:"shortName"`
}

type RawAgency struct {
	Name string `json:"name"`
}

type Fare struct {
	Fare *FareTiers `json:"fare"`
}

type FareTiers struct {
	Regular *FareAmount `json:"regular"`
}

type FareAmount struct {
	Cents    int64        `json:"cents"`
	Currency *RawCurrency `json:"currency"`
}

type RawCurrency struct {
	Symbol string `json:"symbol"`
}
