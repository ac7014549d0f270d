// Package html renders a render pass as HTML. Answered spans, pending
// questions and optional clauses are wrapped in themed marker elements that
// carry their question key in a data-question attribute.
package html

import (
	"context"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-livedoc/pkg/assemble"
	"github.com/goliatone/go-livedoc/pkg/markup"
	rendertemplate "github.com/goliatone/go-livedoc/pkg/markup/template"
	"github.com/goliatone/go-livedoc/pkg/markup/template/gotemplate"
	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/span"
)

// Name is the registry key of the formatter.
const Name = "html"

type Option func(*config)

type config struct {
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesDir loads templates from a directory on disk instead of the
// embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Formatter implements markup.Formatter for HTML output.
type Formatter struct {
	templates rendertemplate.TemplateRenderer
}

var _ markup.Formatter = (*Formatter)(nil)

// New constructs the html formatter applying any provided options.
func New(options ...Option) (*Formatter, error) {
	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		source := gotemplate.WithFS(TemplatesFS())
		if cfg.templateDir != "" {
			source = gotemplate.WithBaseDir(cfg.templateDir)
		}
		engine, err := gotemplate.New(
			source,
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithGlobalData(map[string]any{
				"title":   "Document",
				"theme":   markup.DefaultTheme,
				"variant": markup.VariantLight,
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("html formatter: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Formatter{templates: renderer}, nil
}

func (f *Formatter) Name() string {
	return Name
}

func (f *Formatter) ContentType() string {
	return "text/html; charset=utf-8"
}

// Format assembles the document with themed markers. Answer text is escaped
// by the templates; template text outside spans is copied verbatim.
func (f *Formatter) Format(ctx context.Context, in markup.Input, opts markup.Options) ([]byte, error) {
	if f.templates == nil {
		return nil, fmt.Errorf("html formatter: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &marker{templates: f.templates, theme: opts.Theme}
	body, err := assemble.Assemble(in.Template, in.Spans, in.Decisions, m)
	if err != nil {
		return nil, fmt.Errorf("html formatter: %w", err)
	}
	if m.err != nil {
		return nil, fmt.Errorf("html formatter: render marker: %w", m.err)
	}
	if opts.Sanitize {
		body = Sanitize(body)
	}
	if !opts.Standalone {
		return []byte(body), nil
	}

	page, err := f.templates.RenderTemplate(markup.Partial(opts.Theme, markup.TokenDocument), documentData(in, opts.Theme, body))
	if err != nil {
		return nil, fmt.Errorf("html formatter: render document: %w", err)
	}
	return []byte(page), nil
}

func documentData(in markup.Input, cfg *theme.RendererConfig, body string) map[string]any {
	data := map[string]any{
		"body":  body,
		"class": markup.Token(cfg, markup.TokenDocument),
	}
	if title := strings.TrimSpace(in.Title); title != "" {
		data["title"] = title
	}
	if cfg != nil {
		if cfg.Theme != "" {
			data["theme"] = cfg.Theme
		}
		if cfg.Variant != "" {
			data["variant"] = cfg.Variant
		}
		if cfg.AssetURL != nil {
			data["stylesheet"] = cfg.AssetURL("stylesheet")
		}
	}
	return data
}

// marker renders assemble callbacks through the partial templates. The first
// template error is kept and reported after assembly.
type marker struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	err       error
}

func (m *marker) Answered(sp span.Span, d render.Decision) string {
	return m.render(markup.TokenAnswered, map[string]any{
		"class": markup.Token(m.theme, markup.TokenAnswered),
		"key":   d.QuestionKey,
		"kind":  sp.Kind.String(),
		"text":  d.Text,
	})
}

func (m *marker) Unanswered(sp span.Span, d render.Decision, content string) string {
	return m.render(markup.TokenUnanswered, map[string]any{
		"class":   markup.Token(m.theme, markup.TokenUnanswered),
		"key":     d.QuestionKey,
		"kind":    sp.Kind.String(),
		"index":   sp.Index,
		"content": content,
	})
}

func (m *marker) Optional(sp span.Span, d render.Decision, content string) string {
	return m.render(markup.TokenOptional, map[string]any{
		"class":   markup.Token(m.theme, markup.TokenOptional),
		"key":     d.QuestionKey,
		"kind":    sp.Kind.String(),
		"content": content,
	})
}

func (m *marker) render(token string, data map[string]any) string {
	if m.err != nil {
		return ""
	}
	out, err := m.templates.RenderTemplate(markup.Partial(m.theme, token), data)
	if err != nil {
		m.err = err
		return ""
	}
	return out
}
