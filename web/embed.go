// Package web provides the embedded static assets of the gallery: the site
// stylesheet and the admin mode script, served at /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var StaticFS embed.FS

// Static returns the static tree rooted at web/static.
func Static() fs.FS {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
