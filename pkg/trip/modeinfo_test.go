package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeDetailsCoversEveryMode(t *testing.T) {
	for _, mode := range AllTransportModes {
		details := ModeDetails(mode)

		assert.NotEmpty(t, details.Label, "mode %s has no label", mode)
		assert.NotEmpty(t, details.Icon, "mode %s has no icon", mode)
		assert.NotEmpty(t, details.Colour, "mode %s has no colour", mode)
	}
}

func TestParseTransportMode(t *testing.T) {
	mode, known := ParseTransportMode("BICYCLE")
	assert.True(t, known)
	assert.Equal(t, TransportModeBicycle, mode)

	_, known = ParseTransportMode("HOVERCRAFT")
	assert.False(t, known)
}
