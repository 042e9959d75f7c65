package util

import (
	"time"
)

// Timezone resolves an IANA zone name, falling back to the process local zone
// when the name is empty or unknown.
func Timezone(name string) *time.Location {
	if name == "" {
		return time.Local
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}

	return location
}
