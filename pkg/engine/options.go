package engine

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-livedoc/pkg/document"
	"github.com/goliatone/go-livedoc/pkg/markup"
	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/resolve"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithLogger routes engine logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProfile replaces the embedded employment agreement profile.
func WithProfile(p *profile.Profile) Option {
	return func(e *Engine) {
		e.profile = p
		e.profileSpecified = true
	}
}

// WithLoader injects a custom document loader.
func WithLoader(loader document.Loader) Option {
	return func(e *Engine) {
		e.loader = loader
	}
}

// WithRegistry injects a formatter registry.
func WithRegistry(registry *markup.Registry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithDefaultFormat overrides the formatter used when a render request
// omits one.
func WithDefaultFormat(name string) Option {
	return func(e *Engine) {
		e.defaultFormat = name
	}
}

// WithThemeSelector injects the theme selector used for marker styling.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(e *Engine) {
		e.selector = selector
	}
}

// WithMappings registers label → question overrides applied to every
// session.
func WithMappings(mappings map[string]string) Option {
	return func(e *Engine) {
		if len(mappings) == 0 {
			return
		}
		e.resolveOptions = append(e.resolveOptions, resolve.WithMappings(mappings))
	}
}

// WithStrict disables the generic resolution fallback.
func WithStrict() Option {
	return func(e *Engine) {
		e.resolveOptions = append(e.resolveOptions, resolve.WithStrict())
	}
}
