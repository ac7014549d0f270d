package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/prompt"
	"github.com/goliatone/go-livedoc/pkg/questionnaire"
)

type scriptedDriver struct {
	inputs  []string
	confirm []bool
}

func (d *scriptedDriver) Input(_ context.Context, _ prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := d.inputs[0]
	d.inputs = d.inputs[1:]
	return val, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if len(d.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := d.confirm[0]
	d.confirm = d.confirm[1:]
	return val, nil
}

func (d *scriptedDriver) TextArea(_ context.Context, _ prompt.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(_ context.Context, _ string) error {
	return nil
}

func run(t *testing.T, c *cli, args ...string) (string, string, error) {
	t.Helper()
	if c == nil {
		c = &cli{}
	}
	var stdout, stderr bytes.Buffer
	cmd := newRootCmdWith(c)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.html")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, nil, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "livedoc-cli 0.1.0-dev\n" {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestRender_SampleWithSampleAnswers(t *testing.T) {
	out, _, err := run(t, nil, "render", "--sample-answers", "--format", "text")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"EMPLOYMENT AGREEMENT", "laws of England and Wales.", "work at Leeds and York."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestRender_UnansweredSampleKeepsMarkers(t *testing.T) {
	out, _, err := run(t, nil, "render", "--variant", "dark", "--standalone")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `data-question="Employer Name"`, "livedoc-dark"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRender_WritesOutputFile(t *testing.T) {
	template := writeTemplate(t, "<p>[Employer Name] employs [Employee Name].</p>")
	answers := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(answers, []byte("Employer Name: Acme\n"), 0o600); err != nil {
		t.Fatalf("write answers: %v", err)
	}
	output := filepath.Join(t.TempDir(), "out.txt")

	_, stderr, err := run(t, nil, "render", template, "-a", answers, "-f", "text", "-o", output)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "Acme employs [Employee Name].\n" {
		t.Fatalf("unexpected document: %q", data)
	}
	if !strings.Contains(stderr, "Document written to "+output) {
		t.Fatalf("expected write notice, got %q", stderr)
	}
}

func TestRender_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	partial := `<em title="{{ key|squash }}">{{ text }}</em>`
	if err := os.WriteFile(filepath.Join(dir, "answered.tpl"), []byte(partial), 0o600); err != nil {
		t.Fatalf("write partial: %v", err)
	}
	template := writeTemplate(t, "<p>[Employer Name]</p>")
	answers := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(answers, []byte("Employer Name: Acme\n"), 0o600); err != nil {
		t.Fatalf("write answers: %v", err)
	}

	out, _, err := run(t, nil, "--templates-dir", dir, "render", template, "-a", answers)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<p><em title="Employer Name">Acme</em></p>`; out != want {
		t.Fatalf("output mismatch\nwant: %s\n got: %s", want, out)
	}
}

func TestRender_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "log level", args: []string{"--log-level", "loud", "render"}},
		{name: "missing template", args: []string{"render", filepath.Join(t.TempDir(), "missing.html")}},
		{name: "unknown format", args: []string{"render", "-f", "pdf"}},
		{name: "conflicting answers", args: []string{"render", "--sample-answers", "-a", "answers.yaml"}},
		{name: "unterminated", args: []string{"render", writeTemplate(t, "<p>[Employer Name</p>")}},
		{name: "malformed url", args: []string{"render", "https://exa mple.com/doc.html"}},
		{name: "blank source", args: []string{"render", "  "}},
		{name: "missing templates dir", args: []string{"--templates-dir", filepath.Join(t.TempDir(), "none"), "render"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := run(t, nil, tc.args...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSpans_JSON(t *testing.T) {
	out, _, err := run(t, nil, "spans", "-o", "json")
	if err != nil {
		t.Fatalf("spans: %v", err)
	}
	var rows []spanRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 33 {
		t.Fatalf("expected 33 spans in the sample, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Rule == "unresolved" {
			t.Fatalf("span %d is unresolved: %q", row.Index, row.Literal)
		}
	}
}

func TestSpans_TableAndStrict(t *testing.T) {
	template := writeTemplate(t, "<p>[Company] and [Something Else]</p>")
	out, _, err := run(t, nil, "--strict", "--map", "Company=Employer Name", "spans", template)
	if err != nil {
		t.Fatalf("spans: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", out)
	}
	if !strings.Contains(lines[1], "Employer Name") || !strings.Contains(lines[2], "unresolved") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestQuestions_YAMLAndSchema(t *testing.T) {
	out, _, err := run(t, nil, "questions")
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	var questions []questionnaire.Question
	if err := yaml.Unmarshal([]byte(out), &questions); err != nil {
		t.Fatalf("decode questions: %v", err)
	}
	if len(questions) == 0 || questions[0].Key != "Agreement Date" || questions[0].Type != questionnaire.TypeDate {
		t.Fatalf("unexpected first question: %+v", questions)
	}

	out, _, err = run(t, nil, "questions", "-o", "schema")
	if err != nil {
		t.Fatalf("questions schema: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema["type"] != "object" {
		t.Fatalf("expected an object schema, got %v", schema["type"])
	}
	if _, ok := schema["properties"].(map[string]any)["What's the annual salary?"]; !ok {
		t.Fatalf("expected the salary question in the schema")
	}
}

func TestAsk_SavesAnswersAndRenders(t *testing.T) {
	template := writeTemplate(t, "<p>[Employer Name] {The Employee may work remotely.}</p>")
	dir := t.TempDir()
	saved := filepath.Join(dir, "answers.json")
	rendered := filepath.Join(dir, "out.txt")

	c := &cli{driver: &scriptedDriver{inputs: []string{"Acme"}, confirm: []bool{true}}}
	if _, _, err := run(t, c, "ask", template, "--save", saved, "-o", rendered, "-f", "text"); err != nil {
		t.Fatalf("ask: %v", err)
	}

	answers, err := answer.LoadFile(saved)
	if err != nil {
		t.Fatalf("load saved answers: %v", err)
	}
	if got := answer.Lookup(answers, "Employer Name"); !got.Equal(answer.String("Acme")) {
		t.Fatalf("unexpected saved answer: %#v", got)
	}
	data, err := os.ReadFile(rendered)
	if err != nil {
		t.Fatalf("read rendered: %v", err)
	}
	if string(data) != "Acme The Employee may work remotely.\n" {
		t.Fatalf("unexpected document: %q", data)
	}
}
