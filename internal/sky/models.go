package sky

// Coordinates is a latitude/longitude pair in decimal degrees.
// It is used both for the viewer and for the tracked satellite.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherSnapshot is the current weather condition at the viewer location.
type WeatherSnapshot struct {
	ConditionCode int    `json:"conditionCode"`
	Description   string `json:"description"`
}

// SunWindow holds sunrise/sunset hours already shifted into display hours.
type SunWindow struct {
	SunriseDisplayHour  int `json:"sunriseDisplayHour"`
	SunsetDisplayHour   int `json:"sunsetDisplayHour"`
	SunsetDisplayMinute int `json:"sunsetDisplayMinute"`
}

// Overview is everything the index page needs for one render.
type Overview struct {
	Weather WeatherSnapshot `json:"weather"`
	ISS     Coordinates     `json:"iss"`
	Viewer  Coordinates     `json:"viewer"`
	Sun     SunWindow       `json:"sun"`
	Advice  Advice          `json:"advice"`
}
