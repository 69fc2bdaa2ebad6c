package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var landingAssets embed.FS

// FS returns the landing page assets with static/ stripped.
func FS() http.FileSystem {
	sub, err := fs.Sub(landingAssets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
