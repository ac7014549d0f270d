package markup

import (
	"context"
	"errors"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/span"
)

// ErrUnknownFormat is returned when no formatter is registered under a name.
var ErrUnknownFormat = errors.New("markup: unknown format")

// Input is one render pass over an immutable template.
type Input struct {
	Template  string
	Spans     []span.Span
	Decisions []render.Decision
	// Title names the document in standalone output.
	Title string
}

// Options tune a single Format call.
type Options struct {
	// Theme carries resolved marker tokens. Nil means the formatter default.
	Theme *theme.RendererConfig
	// Standalone wraps the fragment into a complete document.
	Standalone bool
	// Sanitize runs the output through the HTML policy. Use it for templates
	// that came from an untrusted source; it re-encodes text entities.
	Sanitize bool
}

// Formatter converts a render pass into bytes.
type Formatter interface {
	Name() string
	ContentType() string
	Format(ctx context.Context, in Input, opts Options) ([]byte, error)
}
