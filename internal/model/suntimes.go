package model

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// SunTimes represents the sunrise and sunset times of a date.
type SunTimes struct {
	Rise, Set time.Time
}

// SunTimesAt returns the sunrise and sunset times at the destination on the
// date of the given time, in that time's location.
// It returns false if the destination has no coordinates or the sun does not
// rise or set there on that day.
func SunTimesAt(d Destination, day time.Time) (SunTimes, bool) {
	if d.Latitude == nil || d.Longitude == nil {
		return SunTimes{}, false
	}

	rise, set := sunrise.SunriseSunset(*d.Latitude, *d.Longitude, day.Year(), day.Month(), day.Day())
	if rise.IsZero() || set.IsZero() {
		return SunTimes{}, false
	}

	return SunTimes{
		Rise: rise.In(day.Location()),
		Set:  set.In(day.Location()),
	}, true
}
