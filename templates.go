package livedoc

import (
	"io/fs"

	"github.com/goliatone/go-livedoc/pkg/markup/html"
)

// EmbeddedTemplates exposes the built-in html marker templates so callers
// can copy or override them without importing the formatter package.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
