package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/document"
	"github.com/goliatone/go-livedoc/pkg/markup"
	"github.com/goliatone/go-livedoc/pkg/questionnaire"
	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/resolve"
	"github.com/goliatone/go-livedoc/pkg/span"
)

// Session holds the analysed template. Its state is immutable after Open,
// so one session can serve concurrent render passes.
type Session struct {
	id            string
	engine        *Engine
	logger        *slog.Logger
	doc           document.Document
	spans         []span.Span
	resolutions   []resolve.Resolution
	questionnaire *questionnaire.Questionnaire
	affected      map[string][]int
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Document returns the template document.
func (s *Session) Document() document.Document {
	return s.doc
}

// Spans returns a copy of the span table.
func (s *Session) Spans() []span.Span {
	return append([]span.Span(nil), s.spans...)
}

// Resolutions returns a copy of the resolution table, indexed like Spans.
func (s *Session) Resolutions() []resolve.Resolution {
	return append([]resolve.Resolution(nil), s.resolutions...)
}

// Questionnaire returns the questions derived from the template.
func (s *Session) Questionnaire() *questionnaire.Questionnaire {
	return s.questionnaire
}

// Affected lists the span indices whose rendering depends on key, either as
// the driving question or as a gate.
func (s *Session) Affected(key string) []int {
	return append([]int(nil), s.affected[key]...)
}

// RenderRequest tunes one render pass.
type RenderRequest struct {
	// Answers is read once; a *answer.Store is snapshotted first.
	Answers answer.Reader
	// Format names the formatter. Empty selects the engine default.
	Format string
	// Theme and Variant select marker styling. Empty selects the defaults.
	Theme   string
	Variant string
	// Standalone wraps the output into a complete document.
	Standalone bool
	// Sanitize forces the output policy. Remote templates are always
	// sanitized.
	Sanitize bool
	// Title overrides the document name in standalone output.
	Title string
}

// Result is the outcome of one render pass.
type Result struct {
	Output      []byte
	ContentType string
	Decisions   []render.Decision
	Warnings    []render.Warning
	// Issues are answer validation problems. They never fail a render.
	Issues []questionnaire.Issue
	// Missing lists required questions still unanswered.
	Missing []string
}

// Complete reports whether every required question is answered.
func (r Result) Complete() bool {
	return len(r.Missing) == 0
}

// Render decides every span against the answers and formats the document.
func (s *Session) Render(ctx context.Context, req RenderRequest) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	answers := req.Answers
	if store, ok := answers.(*answer.Store); ok {
		if store == nil {
			answers = answer.Map{}
		} else {
			answers = store.Snapshot()
		}
	}
	if answers == nil {
		answers = answer.Map{}
	}

	pass, err := render.Decide(s.spans, s.resolutions, answers)
	if err != nil {
		return Result{}, fmt.Errorf("engine: decide: %w", err)
	}

	formatter, err := s.engine.formatterFor(req.Format)
	if err != nil {
		return Result{}, err
	}
	cfg, err := markup.ResolveTheme(s.engine.selector, req.Theme, req.Variant)
	if err != nil {
		return Result{}, fmt.Errorf("engine: theme: %w", err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = s.doc.Name()
	}
	output, err := formatter.Format(ctx, markup.Input{
		Template:  s.doc.Text(),
		Spans:     s.spans,
		Decisions: pass.Decisions,
		Title:     title,
	}, markup.Options{
		Theme:      cfg,
		Standalone: req.Standalone,
		Sanitize:   req.Sanitize || s.doc.Remote(),
	})
	if err != nil {
		return Result{}, fmt.Errorf("engine: format %s: %w", formatter.Name(), err)
	}

	for _, warning := range pass.Warnings {
		s.logger.Warn("answer not usable", "question", warning.QuestionKey, "span", warning.Span, "reason", warning.Message)
	}
	result := Result{
		Output:      output,
		ContentType: formatter.ContentType(),
		Decisions:   pass.Decisions,
		Warnings:    pass.Warnings,
		Issues:      s.questionnaire.Validate(answers),
		Missing:     s.questionnaire.Missing(answers),
	}
	s.logger.Debug("render pass",
		"format", formatter.Name(),
		"substituted", pass.Count(render.ActionSubstitute),
		"omitted", pass.Count(render.ActionOmit),
		"optional", pass.Count(render.ActionShowGreyedOptional),
		"interactive", pass.Count(render.ActionShowInteractiveUnanswered),
		"issues", len(result.Issues),
	)
	return result, nil
}
