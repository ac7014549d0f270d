// Package assemble rewrites a template from a span table and one pass of
// render decisions.
package assemble

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/span"
)

// Marker turns decided spans into output markup. Implementations decide how
// answered and pending regions are decorated; content arguments are already
// assembled template text and must not be escaped again.
type Marker interface {
	// Answered renders a substituted placeholder or follow-up. d.Text is
	// answer text and is not escaped.
	Answered(sp span.Span, d render.Decision) string
	// Unanswered renders an interactive marker around content. d.QuestionKey
	// names the question the marker links to.
	Unanswered(sp span.Span, d render.Decision, content string) string
	// Optional renders a greyed pending condition. content keeps the
	// condition delimiters.
	Optional(sp span.Span, d render.Decision, content string) string
}

// Plain is a Marker that adds no decoration.
type Plain struct{}

func (Plain) Answered(_ span.Span, d render.Decision) string { return d.Text }

func (Plain) Unanswered(_ span.Span, _ render.Decision, content string) string { return content }

func (Plain) Optional(_ span.Span, _ render.Decision, content string) string { return content }

// Assemble applies decisions to template in one left-to-right pass using the
// positions captured at extraction. Text outside spans is copied verbatim and
// the same inputs always produce the same output.
func Assemble(template string, spans []span.Span, decisions []render.Decision, marker Marker) (string, error) {
	if len(spans) != len(decisions) {
		return "", fmt.Errorf("assemble: %d spans but %d decisions", len(spans), len(decisions))
	}
	if marker == nil {
		marker = Plain{}
	}
	for i, sp := range spans {
		if sp.Index != i || decisions[i].Span != i {
			return "", fmt.Errorf("assemble: decision %d does not belong to span %d", decisions[i].Span, sp.Index)
		}
		if sp.Start < 0 || sp.End > len(template) || sp.Start > sp.End {
			return "", fmt.Errorf("assemble: span %d [%d:%d] is outside the template", i, sp.Start, sp.End)
		}
		if sp.Parent != span.NoParent {
			if sp.Parent < 0 || sp.Parent >= i || !spans[sp.Parent].Contains(sp) {
				return "", fmt.Errorf("assemble: span %d is not inside its parent %d", i, sp.Parent)
			}
		}
	}

	a := assembler{
		template:  template,
		spans:     spans,
		decisions: decisions,
		children:  span.ChildIndex(spans),
		marker:    marker,
	}
	var out strings.Builder
	out.Grow(len(template))
	if err := a.region(&out, 0, len(template), a.children[span.NoParent]); err != nil {
		return "", err
	}
	return out.String(), nil
}

type assembler struct {
	template  string
	spans     []span.Span
	decisions []render.Decision
	children  map[int][]int
	marker    Marker
}

func (a *assembler) region(out *strings.Builder, start, end int, children []int) error {
	cursor := start
	for _, idx := range children {
		sp := a.spans[idx]
		if sp.Start < cursor || sp.End > end {
			return fmt.Errorf("assemble: span %d [%d:%d] overlaps a sibling", idx, sp.Start, sp.End)
		}
		out.WriteString(a.template[cursor:sp.Start])
		if err := a.span(out, sp); err != nil {
			return err
		}
		cursor = sp.End
	}
	out.WriteString(a.template[cursor:end])
	return nil
}

func (a *assembler) span(out *strings.Builder, sp span.Span) error {
	d := a.decisions[sp.Index]
	leaf := sp.Kind == span.KindPlaceholder || sp.Kind == span.KindFollowUp

	switch d.Action {
	case render.ActionOmit:
		return nil
	case render.ActionSubstitute:
		if leaf {
			out.WriteString(a.marker.Answered(sp, d))
			return nil
		}
		return a.region(out, sp.ContentStart, sp.ContentEnd, a.children[sp.Index])
	case render.ActionShowGreyedOptional:
		content, err := a.literal(sp)
		if err != nil {
			return err
		}
		out.WriteString(a.marker.Optional(sp, d, content))
		return nil
	case render.ActionShowInteractiveUnanswered:
		if leaf {
			out.WriteString(a.marker.Unanswered(sp, d, d.Text))
			return nil
		}
		content, err := a.literal(sp)
		if err != nil {
			return err
		}
		out.WriteString(a.marker.Unanswered(sp, d, content))
		return nil
	default:
		return fmt.Errorf("assemble: span %d has unknown action %d", sp.Index, d.Action)
	}
}

// literal assembles the full span, delimiters included, with its children
// rendered in place.
func (a *assembler) literal(sp span.Span) (string, error) {
	var b strings.Builder
	if err := a.region(&b, sp.Start, sp.End, a.children[sp.Index]); err != nil {
		return "", err
	}
	return b.String(), nil
}
