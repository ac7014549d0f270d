package span

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type spanSummary struct {
	Kind    Kind
	Literal string
	Inner   string
	Parent  int
}

func summarise(spans []Span) []spanSummary {
	out := make([]spanSummary, 0, len(spans))
	for _, sp := range spans {
		out = append(out, spanSummary{Kind: sp.Kind, Literal: sp.Literal, Inner: sp.Inner, Parent: sp.Parent})
	}
	return out
}

func TestExtract_DelimiterFamilies(t *testing.T) {
	t.Parallel()

	template := "This agreement is made by [Employer Name]. {The Employee may work remotely.} " +
		"{/The Employee may be required to work at other locations./}"

	spans, err := Extract(template)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := []spanSummary{
		{Kind: KindPlaceholder, Literal: "[Employer Name]", Inner: "Employer Name", Parent: NoParent},
		{Kind: KindSmallCondition, Literal: "{The Employee may work remotely.}", Inner: "The Employee may work remotely.", Parent: NoParent},
		{Kind: KindSmallCondition, Literal: "{/The Employee may be required to work at other locations./}", Inner: "The Employee may be required to work at other locations.", Parent: NoParent},
	}
	if diff := cmp.Diff(want, summarise(spans)); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
	if !spans[2].Escaped {
		t.Fatalf("expected slash form to be flagged as escaped")
	}
	for i, sp := range spans {
		if template[sp.Start:sp.End] != sp.Literal {
			t.Fatalf("span %d literal does not round-trip: %q", i, sp.Literal)
		}
	}
}

func TestExtract_BigConditionStripsHeading(t *testing.T) {
	t.Parallel()

	template := "<h2>EMPLOYMENT AGREEMENT</h2>\n(<h2>PENSION</h2>\n<p>The Employee will be enrolled in the pension scheme.</p>)\n<p>After.</p>"

	spans, err := Extract(template)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}

	got := spans[0]
	if got.Kind != KindBigCondition {
		t.Fatalf("expected big condition, got %s", got.Kind)
	}
	if got.Heading != "PENSION" {
		t.Fatalf("heading mismatch: %q", got.Heading)
	}
	if got.Inner != "<p>The Employee will be enrolled in the pension scheme.</p>" {
		t.Fatalf("inner mismatch: %q", got.Inner)
	}
	if got.Anchor != "EMPLOYMENT AGREEMENT" {
		t.Fatalf("anchor mismatch: %q", got.Anchor)
	}
}

func TestExtract_BigConditionSkipsParentheticals(t *testing.T) {
	t.Parallel()

	template := "A\n(<h2>PENSION</h2>\n<p>The Employee joins the scheme (the \"Scheme\") on day one.</p>)\nB"

	spans, err := Extract(template)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(spans) != 1 || spans[0].Kind != KindBigCondition {
		t.Fatalf("expected a single big condition, got %+v", summarise(spans))
	}
	wantLiteral := "(<h2>PENSION</h2>\n<p>The Employee joins the scheme (the \"Scheme\") on day one.</p>)"
	if spans[0].Literal != wantLiteral {
		t.Fatalf("literal mismatch\nwant: %q\n got: %q", wantLiteral, spans[0].Literal)
	}
	if spans[0].Inner != `<p>The Employee joins the scheme (the "Scheme") on day one.</p>` {
		t.Fatalf("inner mismatch: %q", spans[0].Inner)
	}
}

func TestExtract_PlainParenthesesAreText(t *testing.T) {
	t.Parallel()

	spans, err := Extract(`The company (the "Company") employs [Employee Name].`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(spans) != 1 || spans[0].Kind != KindPlaceholder {
		t.Fatalf("expected a single placeholder, got %+v", summarise(spans))
	}
}

func TestExtract_NestedFamilies(t *testing.T) {
	t.Parallel()

	template := "(<h2>PROBATIONARY PERIOD</h2><p>The first [Probation Period Length] of employment. {Notice applies.}</p>)"

	spans, err := Extract(template)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := []spanSummary{
		{Kind: KindBigCondition, Literal: template, Inner: "<p>The first [Probation Period Length] of employment. {Notice applies.}</p>", Parent: NoParent},
		{Kind: KindPlaceholder, Literal: "[Probation Period Length]", Inner: "Probation Period Length", Parent: 0},
		{Kind: KindSmallCondition, Literal: "{Notice applies.}", Inner: "Notice applies.", Parent: 0},
	}
	if diff := cmp.Diff(want, summarise(spans)); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}

	children := ChildIndex(spans)
	if diff := cmp.Diff([]int{1, 2}, children[0]); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if !spans[0].Contains(spans[1]) {
		t.Fatalf("expected big condition to contain placeholder")
	}
}

func TestExtract_Sentinels(t *testing.T) {
	t.Parallel()

	template := `<p class="USD">Salary [Annual Salary] USD, paid in USD.</p> {/Work at other locations./} USDA`

	spans, err := Extract(template, WithSentinels("USD", "other locations"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := []spanSummary{
		{Kind: KindPlaceholder, Literal: "[Annual Salary]", Inner: "Annual Salary", Parent: NoParent},
		{Kind: KindFollowUp, Literal: "USD", Inner: "USD", Parent: NoParent},
		{Kind: KindFollowUp, Literal: "USD", Inner: "USD", Parent: NoParent},
		{Kind: KindSmallCondition, Literal: "{/Work at other locations./}", Inner: "Work at other locations.", Parent: NoParent},
		{Kind: KindFollowUp, Literal: "other locations", Inner: "other locations", Parent: 3},
	}
	if diff := cmp.Diff(want, summarise(spans)); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_LongestSentinelWins(t *testing.T) {
	t.Parallel()

	spans, err := Extract("Signed by Job Title of the authorized representative.", WithSentinels("Job Title", "Job Title of the authorized representative"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(spans) != 1 || spans[0].Literal != "Job Title of the authorized representative" {
		t.Fatalf("expected longest sentinel, got %+v", summarise(spans))
	}
}

func TestExtract_UnterminatedSpan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		template string
		kind     Kind
		line     int
		column   int
	}{
		{name: "placeholder", template: "Hello\n  [Employer Name", kind: KindPlaceholder, line: 2, column: 3},
		{name: "small", template: "{The Employee may", kind: KindSmallCondition, line: 1, column: 1},
		{name: "escaped small", template: "x {/Other locations.}", kind: KindSmallCondition, line: 1, column: 3},
		{name: "big", template: "(PENSION The Employee will be enrolled.", kind: KindBigCondition, line: 1, column: 1},
		{name: "big with open parenthetical", template: "(PENSION The Employee joins (the Scheme.", kind: KindBigCondition, line: 1, column: 1},
		{name: "placeholder crossing condition", template: "{Paid [Salary} amount]", kind: KindPlaceholder, line: 1, column: 7},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Extract(tc.template)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrUnterminatedSpan) {
				t.Fatalf("expected ErrUnterminatedSpan, got %v", err)
			}
			var unterminated *UnterminatedSpanError
			if !errors.As(err, &unterminated) {
				t.Fatalf("expected *UnterminatedSpanError, got %T", err)
			}
			if unterminated.Kind != tc.kind {
				t.Fatalf("kind mismatch: want %s, got %s", tc.kind, unterminated.Kind)
			}
			if unterminated.Line != tc.line || unterminated.Column != tc.column {
				t.Fatalf("position mismatch: want %d:%d, got %d:%d", tc.line, tc.column, unterminated.Line, unterminated.Column)
			}
		})
	}
}

func TestExtract_SameFamilyDoesNotNest(t *testing.T) {
	t.Parallel()

	spans, err := Extract("[outer [inner] tail]")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(spans) != 1 || spans[0].Literal != "[outer [inner]" {
		t.Fatalf("expected flat shortest match, got %+v", summarise(spans))
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	template := "[A] {B [C]} (PENSION body [D]) USD"
	first, err := Extract(template, WithSentinels("USD"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	second, err := Extract(template, WithSentinels("USD"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("extraction is not idempotent (-first +second):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := Normalize("<p>The Employee\n   will be  enrolled.</p>")
	if got != "TheEmployeewillbeenrolled." {
		t.Fatalf("normalize mismatch: %q", got)
	}
}
