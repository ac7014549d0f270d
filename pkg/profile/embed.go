package profile

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed profiles/*
var embeddedProfiles embed.FS

// DefaultName is the name of the bundled employment agreement profile.
const DefaultName = "employment-agreement"

// EmbeddedFS returns the bundled profiles.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedProfiles, "profiles")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

var (
	defaultOnce    sync.Once
	defaultProfile *Profile
)

// Default returns the bundled employment agreement profile. Callers must not
// mutate the result.
func Default() *Profile {
	defaultOnce.Do(func() {
		p, err := LoadFS(EmbeddedFS(), DefaultName+".yaml")
		if err != nil {
			panic(err)
		}
		defaultProfile = p
	})
	return defaultProfile
}
