package sample_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-livedoc/pkg/engine"
	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/resolve"
	"github.com/goliatone/go-livedoc/pkg/sample"
	"github.com/goliatone/go-livedoc/pkg/span"
)

func TestTemplate_EverySpanResolves(t *testing.T) {
	t.Parallel()

	p := profile.Default()
	spans, err := span.Extract(sample.Template(), p.ExtractOptions()...)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	rules := make(map[string]int)
	for _, res := range resolve.New(p).ResolveAll(spans) {
		if !res.Resolved() {
			t.Fatalf("span %d (%q) is unresolved", res.Span, res.Label)
		}
		rules[res.Rule.String()]++
	}

	want := map[string]int{
		"generic":   15,
		"alias":     3,
		"amount":    1,
		"currency":  1,
		"follow-up": 4,
		"condition": 7,
		"section":   2,
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("resolution rules mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswers_CompleteTheAgreement(t *testing.T) {
	t.Parallel()

	doc := sample.Document()
	session, err := engine.New().Open(context.Background(), engine.Request{Document: &doc})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	result, err := session.Render(context.Background(), engine.RenderRequest{
		Format:  "text",
		Answers: sample.Answers(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !result.Complete() {
		t.Fatalf("expected complete answers, missing %v", result.Missing)
	}
	if len(result.Warnings) != 0 || len(result.Issues) != 0 {
		t.Fatalf("expected clean pass, got warnings %v issues %v", result.Warnings, result.Issues)
	}

	out := string(result.Output)
	for _, want := range []string{
		"EMPLOYMENT AGREEMENT",
		"between Acme Corp of 1 Market Street, Springfield",
		"PROBATIONARY PERIOD",
		"The first three months of employment",
		"employed as Software Engineer.",
		"work at Leeds and York.",
		"entitled to overtime pay",
		"annual salary of 85,000 USD, payable monthly.",
		"Company sick pay of full pay for up to ten days a year.",
		"by giving one month of written notice",
		"laws of England and Wales.",
		"by Grace Hopper, Chief Executive Officer.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"PENSION", "shall not receive", "previous continuous service", "[", "{"} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("expected output to omit %q\n%s", unwanted, out)
		}
	}

	for _, d := range result.Decisions {
		if d.Action == render.ActionShowGreyedOptional {
			t.Fatalf("expected every condition decided, span %d is pending", d.Span)
		}
	}
}

func TestFS_ListsSampleFiles(t *testing.T) {
	t.Parallel()

	if _, err := sample.FS().Open("employment-agreement.html"); err != nil {
		t.Fatalf("open sample template: %v", err)
	}
	if got := sample.Document().Name(); got != sample.Name {
		t.Fatalf("document name mismatch: %q", got)
	}
}
