package trip

// Itinerary is one complete proposed trip from origin to destination, in the
// normalized internal form that is independent of the upstream planner schema.
type Itinerary struct {
	ID int `json:"id"`

	DurationMinutes int `json:"durationMinutes"`
	TransferCount   int `json:"transferCount"`

	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`

	FareDisplay string `json:"fareDisplay,omitempty"`

	Legs []Leg `json:"legs"`
}

// Leg is one continuous segment of an itinerary travelled with a single mode.
type Leg struct {
	Mode TransportMode `json:"mode"`

	From string `json:"from"`
	To   string `json:"to"`

	DurationMinutes int  `json:"durationMinutes"`
	DistanceMeters  *int `json:"distanceMeters,omitempty"`

	RouteLabel   string `json:"routeLabel,omitempty"`
	OperatorName string `json:"operatorName,omitempty"`
}
