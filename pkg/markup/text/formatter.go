// Package text renders a render pass as a plain reading copy: markup is
// stripped, pending placeholders keep their brackets and optional clauses
// keep their delimiters.
package text

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-livedoc/pkg/assemble"
	"github.com/goliatone/go-livedoc/pkg/markup"
	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/span"
)

// Name is the registry key of the formatter.
const Name = "text"

var (
	blockBreak = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|h[1-6]|li|div|section|article|tr)>`)
	stripOnce  sync.Once
	stripper   *bluemonday.Policy
)

// Formatter implements markup.Formatter for plain text output.
type Formatter struct{}

var _ markup.Formatter = Formatter{}

// New returns the text formatter.
func New() Formatter {
	return Formatter{}
}

func (Formatter) Name() string {
	return Name
}

func (Formatter) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (Formatter) Format(ctx context.Context, in markup.Input, _ markup.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := assemble.Assemble(in.Template, in.Spans, in.Decisions, marker{})
	if err != nil {
		return nil, fmt.Errorf("text formatter: %w", err)
	}
	return []byte(Plain(body)), nil
}

// Plain converts HTML to text. Block boundaries become line breaks and runs
// of blank lines collapse to one.
func Plain(markup string) string {
	withBreaks := blockBreak.ReplaceAllStringFunc(markup, func(tag string) string {
		return tag + "\n"
	})
	stripped := html.UnescapeString(stripPolicy().Sanitize(withBreaks))

	lines := strings.Split(stripped, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}

func stripPolicy() *bluemonday.Policy {
	stripOnce.Do(func() {
		stripper = bluemonday.StrictPolicy()
	})
	return stripper
}

// marker keeps pending text readable: placeholders show their brackets and
// answers are inserted as is. The output is escaped text so that stripping
// tags never eats answer content.
type marker struct{}

func (marker) Answered(_ span.Span, d render.Decision) string {
	return html.EscapeString(d.Text)
}

func (marker) Unanswered(sp span.Span, _ render.Decision, content string) string {
	if sp.Kind == span.KindPlaceholder {
		return sp.Literal
	}
	return content
}

func (marker) Optional(_ span.Span, _ render.Decision, content string) string {
	return content
}
