package text

import (
	"testing"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/markup"
	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/resolve"
	"github.com/goliatone/go-livedoc/pkg/span"
	"github.com/goliatone/go-livedoc/pkg/testsupport"
)

func TestFormatter_PlainCopy(t *testing.T) {
	t.Parallel()

	template := "<h2>PARTIES</h2>\n<p>This agreement is made by [Employer Name] &amp; [Employee Name].</p>\n\n\n" +
		"<p>{The Employee may work remotely.}</p>\n(<h2>PENSION</h2><p>Enrolled.</p>)"
	p := profile.Default()
	spans, err := span.Extract(template, p.ExtractOptions()...)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	result, err := render.Decide(spans, resolve.New(p).ResolveAll(spans), answer.Map{
		"Employer Name": answer.String("Smith <Holdings>"),
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	out, err := New().Format(testsupport.Context(), markup.Input{Template: template, Spans: spans, Decisions: result.Decisions}, markup.Options{})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	want := "PARTIES\n\nThis agreement is made by Smith <Holdings> & [Employee Name].\n\n{The Employee may work remotely.}\n"
	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestPlain_CollapsesBlankLines(t *testing.T) {
	t.Parallel()

	got := Plain("<p>One</p>\n\n\n<p>Two<br>Three</p>")
	if got != "One\n\nTwo\nThree\n" {
		t.Fatalf("plain mismatch: %q", got)
	}
}
