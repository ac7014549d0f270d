package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/document"
	"github.com/goliatone/go-livedoc/pkg/markup"
	"github.com/goliatone/go-livedoc/pkg/render"
	"github.com/goliatone/go-livedoc/pkg/span"
)

const salary = "What's the annual salary?"

const fixture = `<h1>EMPLOYMENT AGREEMENT</h1>
<p>Made on [Agreement Date] by [Employer Name] with [Employee Name].</p>
<p>Salary: [Annual Salary] USD.</p>
<p>{The Employee may work remotely.}</p>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func open(t *testing.T, eng *Engine) *Session {
	t.Helper()
	session, err := eng.Open(context.Background(), Request{Template: fixture, Name: "agreement"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return session
}

func TestOpen_AnalysesTemplateOnce(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))

	if session.ID() == "" {
		t.Fatalf("expected a session id")
	}
	if got := len(session.Spans()); got != 6 {
		t.Fatalf("expected 6 spans, got %d", got)
	}
	if got := len(session.Resolutions()); got != len(session.Spans()) {
		t.Fatalf("resolutions must line up with spans, got %d", got)
	}
	if diff := cmp.Diff([]int{3, 4}, session.Affected(salary)); diff != "" {
		t.Fatalf("affected spans mismatch (-want +got):\n%s", diff)
	}
	if session.Document().Name() != "agreement" {
		t.Fatalf("document name mismatch: %q", session.Document().Name())
	}

	other := open(t, New(WithLogger(discardLogger())))
	if other.ID() == session.ID() {
		t.Fatalf("session ids must be unique")
	}
}

func TestOpen_RejectsUnterminatedSpan(t *testing.T) {
	t.Parallel()

	_, err := New(WithLogger(discardLogger())).Open(context.Background(), Request{Template: "<p>[Employer Name</p>"})
	if !errors.Is(err, span.ErrUnterminatedSpan) {
		t.Fatalf("expected ErrUnterminatedSpan, got %v", err)
	}
}

func TestOpen_RequiresInput(t *testing.T) {
	t.Parallel()

	if _, err := New(WithLogger(discardLogger())).Open(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error without a template")
	}
}

func TestRender_HTMLPass(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))
	store := answer.NewStore(answer.Map{
		"Employer Name": answer.String("Acme"),
		salary:          answer.AmountOf("50000", "EUR"),
	})

	result, err := session.Render(context.Background(), RenderRequest{Answers: store})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := string(result.Output)
	for _, want := range []string{
		`data-question="Employer Name" data-kind="placeholder">Acme</span>`,
		`>50000</span>`,
		`data-kind="follow-up">EUR</span>`,
		`data-question="Employee Name" data-kind="placeholder" data-span="2"`,
		`data-optional="true">{The Employee may work remotely.}</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	if result.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("content type mismatch: %q", result.ContentType)
	}
	if diff := cmp.Diff([]string{"Agreement Date", "Employee Name"}, result.Missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	if result.Complete() {
		t.Fatalf("expected incomplete result")
	}
	if got := len(result.Decisions); got != 6 {
		t.Fatalf("expected a decision per span, got %d", got)
	}
}

func TestRender_TextAndConditions(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))
	result, err := session.Render(context.Background(), RenderRequest{
		Format: "text",
		Answers: answer.Map{
			"Employer Name":                   answer.String("Acme"),
			"The Employee may work remotely.": answer.Bool(false),
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := string(result.Output)
	if !strings.Contains(out, "Made on [Agreement Date] by Acme with [Employee Name].") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
	if strings.Contains(out, "remotely") {
		t.Fatalf("declined condition must be omitted:\n%s", out)
	}
	if result.ContentType != "text/plain; charset=utf-8" {
		t.Fatalf("content type mismatch: %q", result.ContentType)
	}
}

func TestRender_StandaloneDarkTheme(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))
	result, err := session.Render(context.Background(), RenderRequest{Standalone: true, Variant: markup.VariantDark})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(result.Output)
	for _, want := range []string{"<title>agreement</title>", `livedoc-dark`, "bg-gray-600/70"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}

	if _, err := session.Render(context.Background(), RenderRequest{Variant: "sepia"}); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))
	_, err := session.Render(context.Background(), RenderRequest{Format: "pdf"})
	if !errors.Is(err, markup.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRender_IssuesAndWarningsDoNotFail(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	session := open(t, New(WithLogger(logger)))

	result, err := session.Render(context.Background(), RenderRequest{Answers: answer.Map{
		"Agreement Date": answer.String("soon"),
		salary:           answer.AmountOf("50000", ""),
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(result.Warnings) == 0 {
		t.Fatalf("expected a warning for the amount without currency")
	}
	if len(result.Issues) == 0 || result.Issues[0].Key != "Agreement Date" {
		t.Fatalf("expected a date issue first, got %v", result.Issues)
	}
	for _, d := range result.Decisions {
		if d.QuestionKey == salary && d.Action != render.ActionShowInteractiveUnanswered {
			t.Fatalf("malformed amount must degrade to interactive, got %s", d.Action)
		}
	}

	text := logs.String()
	for _, want := range []string{`msg="session opened"`, "session=" + session.ID(), `msg="answer not usable"`, `msg="render pass"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected logs to contain %q\n%s", want, text)
		}
	}
}

type remoteLoader struct {
	body string
}

func (l remoteLoader) Load(_ context.Context, src document.Source) (document.Document, error) {
	return document.NewDocument(src, []byte(l.body))
}

func TestRender_RemoteDocumentsAreSanitized(t *testing.T) {
	t.Parallel()

	loader := remoteLoader{body: `<p onclick="steal()">Employer: [Employer Name]</p><script>alert(1)</script>`}
	eng := New(WithLogger(discardLogger()), WithLoader(loader))
	session, err := eng.Open(context.Background(), Request{Source: document.SourceFromURL("https://example.com/templates/agreement.html")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	result, err := session.Render(context.Background(), RenderRequest{Answers: answer.Map{"Employer Name": answer.String("Acme")}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(result.Output)
	if strings.Contains(out, "<script") || strings.Contains(out, "onclick") {
		t.Fatalf("expected remote output to be sanitized:\n%s", out)
	}
	if !strings.Contains(out, ">Acme</span>") {
		t.Fatalf("expected marker to survive sanitizing:\n%s", out)
	}
}

func TestRender_MappingsAndStrict(t *testing.T) {
	t.Parallel()

	eng := New(WithLogger(discardLogger()), WithStrict())
	session, err := eng.Open(context.Background(), Request{
		Template: "<p>[Company] and [Unmapped Label]</p>",
		Mappings: map[string]string{"Company": "Employer Name"},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	resolutions := session.Resolutions()
	if resolutions[0].Key != "Employer Name" {
		t.Fatalf("expected mapping to apply, got %q", resolutions[0].Key)
	}
	if resolutions[1].Resolved() {
		t.Fatalf("expected strict mode to leave the unmapped label unresolved")
	}
	if got := session.Questionnaire().Len(); got != 1 {
		t.Fatalf("expected one question, got %d", got)
	}
}

func TestRender_ConcurrentPasses(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))
	names := []string{"Acme", "Globex", "Initech", "Umbrella"}

	var wg sync.WaitGroup
	errs := make([]error, len(names))
	outputs := make([]string, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			result, err := session.Render(context.Background(), RenderRequest{
				Format:  "text",
				Answers: answer.Map{"Employer Name": answer.String(name)},
			})
			errs[i] = err
			outputs[i] = string(result.Output)
		}(i, name)
	}
	wg.Wait()

	for i, name := range names {
		if errs[i] != nil {
			t.Fatalf("render %d: %v", i, errs[i])
		}
		if !strings.Contains(outputs[i], "by "+name+" with") {
			t.Fatalf("pass %d observed another pass's answers:\n%s", i, outputs[i])
		}
	}
}

func TestRender_CancelledContext(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := session.Render(ctx, RenderRequest{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRender_NilStoreActsAsEmpty(t *testing.T) {
	t.Parallel()

	session := open(t, New(WithLogger(discardLogger())))
	var store *answer.Store
	result, err := session.Render(context.Background(), RenderRequest{Answers: store, Format: "text"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(result.Output), "Made on [Agreement Date] by [Employer Name]") {
		t.Fatalf("expected every placeholder unanswered:\n%s", result.Output)
	}
	if result.Complete() {
		t.Fatalf("expected required questions to be missing")
	}
}
