package trip

import (
	_ "embed"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed modes.yaml
var modesDefinition []byte

// ModeInfo carries the presentation metadata for a transport mode. The table
// in modes.yaml must cover every member of AllTransportModes - there is no
// runtime fallback for an unmapped mode.
type ModeInfo struct {
	Label  string `yaml:"label"`
	Icon   string `yaml:"icon"`
	Colour string `yaml:"colour"`
}

var modeInfoTable map[TransportMode]ModeInfo

func init() {
	if err := yaml.Unmarshal(modesDefinition, &modeInfoTable); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse transport mode definitions")
	}

	for _, mode := range AllTransportModes {
		if _, exists := modeInfoTable[mode]; !exists {
			log.Fatal().Str("mode", string(mode)).Msg("Transport mode missing from definitions")
		}
	}
}

func ModeDetails(mode TransportMode) ModeInfo {
	return modeInfoTable[mode]
}
