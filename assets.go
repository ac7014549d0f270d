package livedoc

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the stylesheet referenced by the default theme manifest
// (served under /assets/livedoc) so applications can mount it directly.
//
// Typical mount:
//
//	mux.Handle("/assets/livedoc/",
//	  http.StripPrefix("/assets/livedoc/",
//	    http.FileServerFS(livedoc.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
