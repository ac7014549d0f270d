package markup

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Marker token keys looked up by the html formatter.
const (
	TokenAnswered   = "marker.answered"
	TokenUnanswered = "marker.unanswered"
	TokenOptional   = "marker.optional"
	TokenDocument   = "document"
)

const (
	DefaultTheme   = "livedoc"
	VariantLight   = "light"
	VariantDark    = "dark"
	defaultVersion = "1.0.0"
)

// DefaultManifest describes the built-in marker palette. The light tokens
// are the base; the dark variant overrides them.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: defaultVersion,
		Tokens: map[string]string{
			TokenAnswered:   "bg-teal-200/70 text-teal-900 px-1 rounded",
			TokenUnanswered: "bg-gray-200/70 text-gray-700 px-1 rounded cursor-pointer hover:bg-gray-500/70",
			TokenOptional:   "bg-gray-200/70 text-gray-700 px-1 rounded",
			TokenDocument:   "bg-white text-gray-900",
		},
		Templates: map[string]string{
			TokenAnswered:   "answered",
			TokenUnanswered: "unanswered",
			TokenOptional:   "optional",
			TokenDocument:   "document",
		},
		Assets: theme.Assets{
			Prefix: "/assets/livedoc",
			Files: map[string]string{
				"stylesheet": "livedoc.css",
			},
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					TokenAnswered:   "bg-teal-600/70 text-teal-100 px-1 rounded",
					TokenUnanswered: "bg-gray-600/70 text-gray-300 px-1 rounded cursor-pointer hover:bg-gray-500/70",
					TokenOptional:   "bg-gray-600/70 text-gray-300 px-1 rounded",
					TokenDocument:   "bg-gray-900 text-gray-100",
				},
			},
		},
	}
}

// Selector resolves theme and variant names against registered manifests.
// It satisfies theme.ThemeSelector.
type Selector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers the manifests (the built-in one when none are given)
// and records the defaults used for empty names. Manifests are validated by
// a go-theme registry before they are accepted.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("markup: register theme %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}
	if s.defaultTheme == "" {
		s.defaultTheme = manifests[0].Name
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("markup: default theme %q is not registered", s.defaultTheme)
	}
	return s, nil
}

// MustSelector panics when NewSelector fails.
func MustSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) *Selector {
	s, err := NewSelector(defaultTheme, defaultVariant, manifests...)
	if err != nil {
		panic(err)
	}
	return s
}

// Select implements theme.ThemeSelector. The light variant is the manifest
// base and always exists.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
	}
	if variant == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("markup: theme %q not found", name)
	}
	if variant != "" && variant != VariantLight {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("markup: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Themes lists the registered theme names.
func (s *Selector) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeConfig flattens a selection into the renderer configuration: base
// tokens overlaid with variant tokens, derived CSS variables and an asset
// resolver.
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := copyTokens(manifest.Tokens)
	partials := copyTokens(manifest.Templates)
	prefix := manifest.Assets.Prefix
	files := copyTokens(manifest.Assets.Files)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Templates {
			partials[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

// ResolveTheme selects and flattens a theme in one step.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("markup: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return ThemeConfig(selection), nil
}

// Token returns a token from cfg, falling back to the built-in light palette.
func Token(cfg *theme.RendererConfig, key string) string {
	if cfg != nil {
		if value, ok := cfg.Tokens[key]; ok {
			return value
		}
	}
	return lightTokens[key]
}

// Partial returns the template name registered for key, falling back to the
// built-in templates.
func Partial(cfg *theme.RendererConfig, key string) string {
	if cfg != nil {
		if value, ok := cfg.Partials[key]; ok && value != "" {
			return value
		}
	}
	return lightPartials[key]
}

var (
	lightTokens   = DefaultManifest().Tokens
	lightPartials = DefaultManifest().Templates
)

func copyTokens(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
