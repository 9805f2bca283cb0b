package sky

import (
	"fmt"
	"math"
	"time"
)

// Verdict is the high-level answer to "should I go outside and look?".
type Verdict string

const (
	VerdictDaytime          Verdict = "daytime"
	VerdictLookUp           Verdict = "look_up"
	VerdictOverheadCloudy   Verdict = "overhead_cloudy"
	VerdictClearNotOverhead Verdict = "clear_not_overhead"
	VerdictNotTonight       Verdict = "not_tonight"
)

const overheadToleranceDegrees = 5.0

// Advice is the recommendation shown on the index page.
type Advice struct {
	Clear    bool    `json:"clear"`
	Night    bool    `json:"night"`
	Overhead bool    `json:"overhead"`
	Verdict  Verdict `json:"verdict"`
	Message  string  `json:"message"`
}

// IsClear reports whether an OpenWeatherMap condition code means a clear or
// nearly clear sky (800 clear, 801 few clouds).
func IsClear(code int) bool {
	return code == 800 || code == 801
}

// IsNight reports whether the display hour falls outside the sun window.
func IsNight(displayHour int, sun SunWindow) bool {
	return displayHour >= sun.SunsetDisplayHour || displayHour <= sun.SunriseDisplayHour
}

// IsOverhead reports whether the satellite is within five degrees of the
// viewer on both axes.
func IsOverhead(viewer, iss Coordinates) bool {
	return math.Abs(iss.Latitude-viewer.Latitude) <= overheadToleranceDegrees &&
		math.Abs(iss.Longitude-viewer.Longitude) <= overheadToleranceDegrees
}

// Advise builds the recommendation for the given readings at time now.
func Advise(now time.Time, weather WeatherSnapshot, viewer, iss Coordinates, sun SunWindow) Advice {
	a := Advice{
		Clear:    IsClear(weather.ConditionCode),
		Night:    IsNight(DisplayHour(now.UTC().Hour()), sun),
		Overhead: IsOverhead(viewer, iss),
	}

	desc := weather.Description
	switch {
	case !a.Night:
		a.Verdict = VerdictDaytime
		a.Message = fmt.Sprintf("The weather is %s, and it's daytime! You won't see the ISS yet. Wait for nighttime.", desc)
	case a.Overhead && a.Clear:
		a.Verdict = VerdictLookUp
		a.Message = fmt.Sprintf("ISS is overhead and the weather is %s. Go look up!", desc)
	case a.Overhead:
		a.Verdict = VerdictOverheadCloudy
		a.Message = fmt.Sprintf("ISS is overhead but the weather is %s. Not tonight!", desc)
	case a.Clear:
		a.Verdict = VerdictClearNotOverhead
		a.Message = fmt.Sprintf("ISS is not overhead but the weather is %s, at least. Check back later!", desc)
	default:
		a.Verdict = VerdictNotTonight
		a.Message = fmt.Sprintf("ISS is not overhead and the weather is %s. Not tonight!", desc)
	}
	return a
}
