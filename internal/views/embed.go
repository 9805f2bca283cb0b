package views

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Static returns the embedded assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}
