package utils

import (
	"time"
)

var platformLoc *time.Location

func init() {
	var err error
	platformLoc, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback to Local if timezone data is missing
		// In production docker, ensure tzdata is installed
		platformLoc = time.Local
	}
}

// PlatformTime returns current time in the platform market timezone
func PlatformTime() time.Time {
	return time.Now().In(platformLoc)
}

// StartOfToday returns 00:00:00 of the current day in the platform timezone
func StartOfToday() time.Time {
	now := PlatformTime()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, platformLoc)
}

// GetLocation returns the platform *time.Location
func GetLocation() *time.Location {
	return platformLoc
}
