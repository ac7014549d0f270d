// Package livedoc renders live legal documents: a template with bracketed
// placeholders and optional clauses is regenerated from the current answers
// on every change, with unanswered regions kept as markers that link back to
// their questions.
package livedoc

import (
	"context"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/document"
	"github.com/goliatone/go-livedoc/pkg/engine"
)

// Session is an analysed template ready for render passes.
type Session = engine.Session

// Request describes the template a session is opened over.
type Request = engine.Request

// RenderRequest tunes one render pass.
type RenderRequest = engine.RenderRequest

// Result is the outcome of one render pass.
type Result = engine.Result

// Answers is a flat question → value mapping.
type Answers = answer.Map

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(options ...engine.Option) *engine.Engine {
	return engine.New(options...)
}

// Open loads and analyses a template from source.
func Open(ctx context.Context, source document.Source, options ...engine.Option) (*Session, error) {
	return engine.New(options...).Open(ctx, engine.Request{Source: source})
}

// RenderHTML loads the template at source and renders it once against
// answers as an html fragment. It is the simplest entry point for callers
// that do not keep a session.
func RenderHTML(ctx context.Context, source document.Source, answers answer.Reader, options ...engine.Option) ([]byte, error) {
	session, err := Open(ctx, source, options...)
	if err != nil {
		return nil, err
	}
	result, err := session.Render(ctx, engine.RenderRequest{Answers: answers})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// RenderString renders an inline template with the named formatter.
func RenderString(ctx context.Context, template string, answers answer.Reader, format string, options ...engine.Option) (Result, error) {
	session, err := engine.New(options...).Open(ctx, engine.Request{Template: template})
	if err != nil {
		return Result{}, err
	}
	return session.Render(ctx, engine.RenderRequest{Answers: answers, Format: format})
}
