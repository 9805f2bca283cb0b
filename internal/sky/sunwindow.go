package sky

import (
	"fmt"
	"time"
)

// The display-hour rule maps an upstream hour onto the viewer's clock by a
// fixed shift: hours at or past DisplayHourWrap wrap back by DisplayHourWrap,
// the rest move forward by DisplayHourShift. It assumes UTC+10 and does not
// follow the viewer's real timezone or daylight saving.
const (
	DisplayHourWrap  = 14
	DisplayHourShift = 10
)

// DisplayHour applies the fixed display-hour rule to h (0-23).
func DisplayHour(h int) int {
	if h >= DisplayHourWrap {
		return h - DisplayHourWrap
	}
	return h + DisplayHourShift
}

// TransformSunWindow converts raw ISO-8601 sunrise/sunset timestamps into a
// SunWindow. The hour and minute are read from each timestamp's own
// time-of-day, not converted to any other zone.
func TransformSunWindow(sunrise, sunset string) (SunWindow, error) {
	rise, err := time.Parse(time.RFC3339, sunrise)
	if err != nil {
		return SunWindow{}, fmt.Errorf("parse sunrise %q: %w", sunrise, err)
	}
	set, err := time.Parse(time.RFC3339, sunset)
	if err != nil {
		return SunWindow{}, fmt.Errorf("parse sunset %q: %w", sunset, err)
	}

	return SunWindow{
		SunriseDisplayHour:  DisplayHour(rise.Hour()),
		SunsetDisplayHour:   DisplayHour(set.Hour()),
		SunsetDisplayMinute: set.Minute(),
	}, nil
}
