package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"

	"github.com/i474232898/iss-finder/internal/sky"
)

var pageTmpl *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	pageTmpl, err = template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// IndexData is the view model for the index page.
type IndexData struct {
	WeatherDescription string
	WeatherID          int

	ISSLatitude  float64
	ISSLongitude float64

	ViewerLatitude  float64
	ViewerLongitude float64

	SunriseHour  int
	SunsetHour   int
	SunsetMinute int

	Verdict string
	Advice  string
}

// NewIndexData flattens an overview into the index view model.
func NewIndexData(ov sky.Overview) *IndexData {
	return &IndexData{
		WeatherDescription: ov.Weather.Description,
		WeatherID:          ov.Weather.ConditionCode,
		ISSLatitude:        ov.ISS.Latitude,
		ISSLongitude:       ov.ISS.Longitude,
		ViewerLatitude:     ov.Viewer.Latitude,
		ViewerLongitude:    ov.Viewer.Longitude,
		SunriseHour:        ov.Sun.SunriseDisplayHour,
		SunsetHour:         ov.Sun.SunsetDisplayHour,
		SunsetMinute:       ov.Sun.SunsetDisplayMinute,
		Verdict:            string(ov.Advice.Verdict),
		Advice:             ov.Advice.Message,
	}
}

func RenderIndex(w io.Writer, data *IndexData) error {
	if pageTmpl == nil {
		return errors.New("index template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "index.html", data)
}

// ErrorData is the view model for the upstream failure page.
type ErrorData struct {
	Status  int
	Message string
}

func RenderError(w io.Writer, data *ErrorData) error {
	if pageTmpl == nil {
		return errors.New("error template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "error.html", data)
}
