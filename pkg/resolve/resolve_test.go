package resolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/resolve"
	"github.com/goliatone/go-livedoc/pkg/span"
)

type binding struct {
	Literal string
	Rule    resolve.Rule
	Key     string
	Gate    string
}

func resolveAll(t *testing.T, template string, r *resolve.Resolver) []binding {
	t.Helper()

	spans, err := span.Extract(template, r.Profile().ExtractOptions()...)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	resolutions := r.ResolveAll(spans)
	out := make([]binding, len(spans))
	for i, res := range resolutions {
		out[i] = binding{Literal: spans[i].Literal, Rule: res.Rule, Key: res.Key, Gate: res.Gate}
	}
	return out
}

func TestResolve_EmploymentProfile(t *testing.T) {
	t.Parallel()

	template := "[Employer Name] employs [Employee Name] as [Job Title] for [Annual Salary] USD. " +
		"{/The Employee may be required to work at other locations./} " +
		"{The Employee shall not receive additional payment for overtime worked.} " +
		"(<h2>PENSION</h2><p>Pension body.</p>) Governed by USA law."

	got := resolveAll(t, template, resolve.New(profile.Default()))

	locationsGate := "Does the employee need to work at additional locations besides the normal place of work?"
	want := []binding{
		{Literal: "[Employer Name]", Rule: resolve.RuleGeneric, Key: "Employer Name"},
		{Literal: "[Employee Name]", Rule: resolve.RuleGeneric, Key: "Employee Name"},
		{Literal: "[Job Title]", Rule: resolve.RuleAlias, Key: "What's the name of the job title?"},
		{Literal: "[Annual Salary]", Rule: resolve.RuleAmount, Key: "What's the annual salary?"},
		{Literal: "USD", Rule: resolve.RuleCurrency, Key: "What's the annual salary?"},
		{Literal: "{/The Employee may be required to work at other locations./}", Rule: resolve.RuleCondition, Key: locationsGate},
		{Literal: "other locations", Rule: resolve.RuleFollowUp, Key: "What is the additional work location?", Gate: locationsGate},
		{Literal: "{The Employee shall not receive additional payment for overtime worked.}", Rule: resolve.RuleCondition, Key: "Is the employee entitled to overtime work?"},
		{Literal: "(<h2>PENSION</h2><p>Pension body.</p>)", Rule: resolve.RuleSection, Key: "Is the Pension clause applicable?"},
		{Literal: "USA", Rule: resolve.RuleFollowUp, Key: "What is the governing country?"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ConditionMatchIgnoresWhitespace(t *testing.T) {
	t.Parallel()

	r := resolve.New(profile.Default())
	spans, err := span.Extract("{The Employee shall not receive\n   additional payment for overtime worked.}")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	res := r.Resolve(spans[0])
	if res.Rule != resolve.RuleCondition || !res.Inverted {
		t.Fatalf("expected inverted overtime condition, got %+v", res)
	}
}

func TestResolve_MappingsAndStrict(t *testing.T) {
	t.Parallel()

	spans, err := span.Extract("[Employer Name] [Job Title] {Optional sentence.} (PENSION body)")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	mapped := resolve.New(nil, resolve.WithMappings(map[string]string{
		" Employer Name ": "Who is the employer?",
	}))
	if got := mapped.Resolve(spans[0]).Key; got != "Who is the employer?" {
		t.Fatalf("mapping not applied: %q", got)
	}
	if got := mapped.Resolve(spans[1]).Key; got != "Job Title" {
		t.Fatalf("generic fallback expected, got %q", got)
	}
	if got := mapped.Resolve(spans[3]).Key; got != "Is the PENSION clause applicable?" {
		t.Fatalf("section question not synthesised: %q", got)
	}

	strict := resolve.New(nil, resolve.WithStrict())
	for _, sp := range spans {
		res := strict.Resolve(sp)
		if res.Resolved() {
			t.Fatalf("strict resolver should not resolve %q: %+v", sp.Literal, res)
		}
		if res.Key != sp.Literal || res.Label != sp.Literal {
			t.Fatalf("unresolved spans use their literal as key and label, got %+v", res)
		}
	}
}

// Two spans with identical text always share one question. This is a known
// limitation: there is no disambiguation by position.
func TestResolve_CollisionSharesQuestion(t *testing.T) {
	t.Parallel()

	spans, err := span.Extract("Signed by [Name] on behalf of [Name].")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	r := resolve.New(nil)
	first, second := r.Resolve(spans[0]), r.Resolve(spans[1])
	if first.Key != second.Key {
		t.Fatalf("expected colliding spans to share a question, got %q and %q", first.Key, second.Key)
	}

	index := resolve.ByQuestion(r.ResolveAll(spans))
	if diff := cmp.Diff([]int{0, 1}, index["Name"]); diff != "" {
		t.Fatalf("reverse index mismatch (-want +got):\n%s", diff)
	}
}

func TestByQuestion_IncludesGates(t *testing.T) {
	t.Parallel()

	r := resolve.New(profile.Default())
	spans, err := span.Extract("Work at other locations.", r.Profile().ExtractOptions()...)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	index := resolve.ByQuestion(r.ResolveAll(spans))
	gate := "Does the employee need to work at additional locations besides the normal place of work?"
	if diff := cmp.Diff([]int{0}, index[gate]); diff != "" {
		t.Fatalf("gate index mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, index["What is the additional work location?"]); diff != "" {
		t.Fatalf("key index mismatch (-want +got):\n%s", diff)
	}
}
