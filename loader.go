package livedoc

import (
	internalLoader "github.com/goliatone/go-livedoc/internal/document/loader"
	"github.com/goliatone/go-livedoc/pkg/document"
)

// NewLoader constructs a template loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...document.LoaderOption) document.Loader {
	cfg := document.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
