package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-livedoc/internal/document/loader"
	"github.com/goliatone/go-livedoc/pkg/document"
	"github.com/goliatone/go-livedoc/pkg/markup"
	"github.com/goliatone/go-livedoc/pkg/markup/html"
	"github.com/goliatone/go-livedoc/pkg/markup/text"
	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/questionnaire"
	"github.com/goliatone/go-livedoc/pkg/resolve"
	"github.com/goliatone/go-livedoc/pkg/span"
)

const defaultFormatName = html.Name

// Engine opens sessions over templates. It applies defaults (embedded
// profile, html and text formatters, livedoc theme) while remaining open to
// dependency injection.
type Engine struct {
	logger           *slog.Logger
	profile          *profile.Profile
	profileSpecified bool
	loader           document.Loader
	registry         *markup.Registry
	selector         theme.ThemeSelector
	defaultFormat    string
	resolveOptions   []resolve.Option
	initialiseErr    error
}

// New constructs an Engine applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Engine {
	e := &Engine{defaultFormat: defaultFormatName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.applyDefaults()
	return e
}

func (e *Engine) applyDefaults() {
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.profile == nil && !e.profileSpecified {
		e.profile = profile.Default()
	}
	if e.loader == nil {
		e.loader = internalLoader.New(document.NewLoaderOptions())
	}
	if e.registry == nil {
		e.registry = markup.NewRegistry()
		formatter, err := html.New()
		if err != nil {
			e.initialiseErr = fmt.Errorf("engine: default html formatter: %w", err)
		} else {
			e.registry.MustRegister(formatter)
		}
		e.registry.MustRegister(text.New())
	}
	if e.selector == nil {
		selector, err := markup.NewSelector(markup.DefaultTheme, markup.VariantLight, markup.DefaultManifest())
		if err != nil {
			e.initialiseErr = errors.Join(e.initialiseErr, fmt.Errorf("engine: default theme: %w", err))
		} else {
			e.selector = selector
		}
	}
	if e.defaultFormat == "" {
		e.defaultFormat = defaultFormatName
	}
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Profile returns the profile sessions are resolved against. It is nil when
// the engine was configured without one.
func (e *Engine) Profile() *profile.Profile {
	return e.profile
}

// Formats lists the registered formatter names.
func (e *Engine) Formats() []string {
	return e.registry.List()
}

// Request describes the template a session is opened over.
type Request struct {
	// Source identifies where the template lives. Optional when Document or
	// Template is supplied.
	Source document.Source

	// Document bypasses the loader when the caller already holds the
	// template.
	Document *document.Document

	// Template is an inline template body; Name labels it.
	Template string
	Name     string

	// Mappings adds label → question overrides for this session only.
	Mappings map[string]string
}

// Open loads and analyses a template. Extraction errors are fatal; no
// session is returned for a template with an unterminated span.
func (e *Engine) Open(ctx context.Context, req Request) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := e.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	var extractOptions []span.Option
	if e.profile != nil {
		extractOptions = e.profile.ExtractOptions()
	}
	spans, err := span.Extract(doc.Text(), extractOptions...)
	if err != nil {
		e.logger.Error("template extraction failed", "location", doc.Location(), "error", err)
		return nil, fmt.Errorf("engine: extract %s: %w", doc.Location(), err)
	}

	resolveOptions := append([]resolve.Option(nil), e.resolveOptions...)
	if len(req.Mappings) > 0 {
		resolveOptions = append(resolveOptions, resolve.WithMappings(req.Mappings))
	}
	resolutions := resolve.New(e.profile, resolveOptions...).ResolveAll(spans)

	s := &Session{
		id:            uuid.NewString(),
		engine:        e,
		doc:           doc,
		spans:         spans,
		resolutions:   resolutions,
		questionnaire: questionnaire.Build(resolutions, e.profile),
		affected:      resolve.ByQuestion(resolutions),
	}
	s.logger = e.logger.With("session", s.id)

	unresolved := 0
	for _, res := range resolutions {
		if !res.Resolved() {
			unresolved++
			s.logger.Debug("span left unresolved", "span", res.Span, "literal", res.Label)
		}
	}
	s.logger.Info("session opened",
		"document", doc.Name(),
		"location", doc.Location(),
		"spans", len(spans),
		"questions", s.questionnaire.Len(),
		"unresolved", unresolved,
	)
	return s, nil
}

func (e *Engine) resolveDocument(ctx context.Context, req Request) (document.Document, error) {
	if req.Document != nil {
		if req.Document.IsZero() {
			return document.Document{}, errors.New("engine: document is empty")
		}
		return *req.Document, nil
	}
	if strings.TrimSpace(req.Template) != "" {
		doc, err := document.FromString(req.Name, req.Template)
		if err != nil {
			return document.Document{}, fmt.Errorf("engine: inline template: %w", err)
		}
		return doc, nil
	}
	if req.Source == nil {
		return document.Document{}, errors.New("engine: source, document or template is required")
	}
	doc, err := e.loader.Load(ctx, req.Source)
	if err != nil {
		return document.Document{}, fmt.Errorf("engine: load document: %w", err)
	}
	return doc, nil
}

func (e *Engine) formatterFor(name string) (markup.Formatter, error) {
	if e.registry == nil {
		return nil, errors.New("engine: formatter registry is nil")
	}
	target := strings.TrimSpace(name)
	if target == "" {
		target = e.defaultFormat
	}
	formatter, err := e.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return formatter, nil
}
