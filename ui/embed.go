// Package ui embeds the default control page served when no static root
// is configured.
package ui

import (
	"embed"
	"io/fs"
)

//go:embed www
var wwwFS embed.FS

// FS returns the embedded control page rooted at its index.html.
func FS() fs.FS {
	sub, err := fs.Sub(wwwFS, "www")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
