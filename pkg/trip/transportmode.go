package trip

import (
	"golang.org/x/exp/slices"
)

type TransportMode string

//goland:noinspection GoUnusedConst
const (
	TransportModeTransit TransportMode = "TRANSIT"
	TransportModeWalk    TransportMode = "WALK"
	TransportModeBicycle TransportMode = "BICYCLE"
	TransportModeCar     TransportMode = "CAR"
	TransportModeBus     TransportMode = "BUS"
	TransportModeRail    TransportMode = "RAIL"
)

// AllTransportModes is the closed set of modes the planner understands.
var AllTransportModes = []TransportMode{
	TransportModeTransit,
	TransportModeWalk,
	TransportModeBicycle,
	TransportModeCar,
	TransportModeBus,
	TransportModeRail,
}

func ParseTransportMode(token string) (TransportMode, bool) {
	mode := TransportMode(token)
	if slices.Contains(AllTransportModes, mode) {
		return mode, true
	}

	return "", false
}
