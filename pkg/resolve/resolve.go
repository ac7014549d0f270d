// Package resolve maps extracted spans to the questions that drive them.
package resolve

import (
	"strings"

	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/span"
)

// Rule names the resolution rule that matched a span.
type Rule uint8

const (
	// RuleUnresolved marks a span with no question. Its key is its literal.
	RuleUnresolved Rule = iota
	// RuleGeneric uses the span label as the question.
	RuleGeneric
	// RuleAlias maps a placeholder label to a differently worded question.
	RuleAlias
	// RuleAmount maps a placeholder to the amount part of an amount question.
	RuleAmount
	// RuleCurrency maps a currency sentinel to the currency part of an
	// amount question.
	RuleCurrency
	// RuleFollowUp maps a sentinel to a dependent question, optionally gated.
	RuleFollowUp
	// RuleCondition maps an optional sentence to its gate question.
	RuleCondition
	// RuleSection maps an optional section to its gate question.
	RuleSection
)

func (r Rule) String() string {
	switch r {
	case RuleUnresolved:
		return "unresolved"
	case RuleGeneric:
		return "generic"
	case RuleAlias:
		return "alias"
	case RuleAmount:
		return "amount"
	case RuleCurrency:
		return "currency"
	case RuleFollowUp:
		return "follow-up"
	case RuleCondition:
		return "condition"
	case RuleSection:
		return "section"
	default:
		return "unknown"
	}
}

// Resolution is the question binding of one span.
type Resolution struct {
	Span int
	Rule Rule
	// Key is the question whose answer drives the span.
	Key string
	// Gate is the boolean question that must be true before a follow-up
	// substitutes.
	Gate string
	// Label is the text shown on an unanswered marker.
	Label           string
	Inverted        bool
	Format          profile.Format
	DefaultCurrency string
}

// Resolved reports whether a question was found for the span.
func (r Resolution) Resolved() bool {
	return r.Rule != RuleUnresolved
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMappings registers label → question overrides, mirroring questions the
// user has reworded. Labels are matched after trimming.
func WithMappings(mappings map[string]string) Option {
	return func(r *Resolver) {
		for label, question := range mappings {
			label = strings.TrimSpace(label)
			question = strings.TrimSpace(question)
			if label == "" || question == "" {
				continue
			}
			r.mappings[label] = question
		}
	}
}

// WithStrict disables the generic fallback so that only profile rules and
// explicit mappings resolve spans.
func WithStrict() Option {
	return func(r *Resolver) {
		r.strict = true
	}
}

// Resolver binds spans to questions. It is immutable after New and safe for
// concurrent use.
type Resolver struct {
	profile  *profile.Profile
	mappings map[string]string
	strict   bool

	aliases    map[string]string
	amounts    map[string]profile.AmountRule
	currencies map[string]profile.AmountRule
	followUps  map[string]profile.FollowUp
	conditions map[string]profile.Condition
	sections   map[string]profile.Section
}

// New builds a resolver for the supplied profile. A nil profile leaves only
// the generic rule and explicit mappings.
func New(p *profile.Profile, options ...Option) *Resolver {
	r := &Resolver{
		profile:    p,
		mappings:   make(map[string]string),
		aliases:    make(map[string]string),
		amounts:    make(map[string]profile.AmountRule),
		currencies: make(map[string]profile.AmountRule),
		followUps:  make(map[string]profile.FollowUp),
		conditions: make(map[string]profile.Condition),
		sections:   make(map[string]profile.Section),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if p == nil {
		return r
	}

	for _, alias := range p.Aliases {
		r.aliases[alias.Placeholder] = alias.Question
	}
	for _, rule := range p.Amounts {
		r.amounts[rule.Placeholder] = rule
		if rule.Currency != "" {
			r.currencies[rule.Currency] = rule
		}
	}
	for _, rule := range p.FollowUps {
		r.followUps[rule.Sentinel] = rule
	}
	for _, rule := range p.Conditions {
		key := span.Normalize(rule.Text)
		if _, exists := r.conditions[key]; exists {
			continue
		}
		r.conditions[key] = rule
	}
	for _, rule := range p.Sections {
		r.sections[strings.ToUpper(rule.Heading)] = rule
	}
	return r
}

// Profile returns the profile the resolver was built from.
func (r *Resolver) Profile() *profile.Profile {
	return r.profile
}

// ResolveAll resolves every span; the result is indexed like spans.
func (r *Resolver) ResolveAll(spans []span.Span) []Resolution {
	out := make([]Resolution, len(spans))
	for i, sp := range spans {
		out[i] = r.Resolve(sp)
	}
	return out
}

// Resolve binds one span to its question. Identical literal text always
// resolves to the same question; two spans that need different questions
// must differ in text.
func (r *Resolver) Resolve(sp span.Span) Resolution {
	switch sp.Kind {
	case span.KindPlaceholder:
		return r.placeholder(sp)
	case span.KindFollowUp:
		return r.followUp(sp)
	case span.KindSmallCondition:
		return r.condition(sp)
	case span.KindBigCondition:
		return r.section(sp)
	default:
		return unresolved(sp)
	}
}

func (r *Resolver) placeholder(sp span.Span) Resolution {
	label := strings.TrimSpace(sp.Inner)
	if label == "" {
		return unresolved(sp)
	}
	res := Resolution{Span: sp.Index, Label: label}

	if rule, ok := r.amounts[label]; ok {
		res.Rule = RuleAmount
		res.Key = rule.Question
		res.DefaultCurrency = rule.DefaultCurrency
		return res
	}
	if question, ok := r.mappings[label]; ok {
		res.Rule = RuleGeneric
		res.Key = question
		return res
	}
	if question, ok := r.aliases[label]; ok {
		res.Rule = RuleAlias
		res.Key = question
		return res
	}
	return r.generic(sp, res, label)
}

func (r *Resolver) followUp(sp span.Span) Resolution {
	res := Resolution{Span: sp.Index, Label: sp.Literal}
	if rule, ok := r.currencies[sp.Literal]; ok {
		res.Rule = RuleCurrency
		res.Key = rule.Question
		res.DefaultCurrency = rule.DefaultCurrency
		return res
	}
	if rule, ok := r.followUps[sp.Literal]; ok {
		res.Rule = RuleFollowUp
		res.Key = rule.Question
		res.Gate = rule.Gate
		res.Format = rule.Format
		return res
	}
	return unresolved(sp)
}

func (r *Resolver) condition(sp span.Span) Resolution {
	label := strings.TrimSpace(sp.Inner)
	if label == "" {
		return unresolved(sp)
	}
	res := Resolution{Span: sp.Index, Label: sp.Literal}
	if rule, ok := r.conditions[span.Normalize(label)]; ok {
		res.Rule = RuleCondition
		res.Key = rule.Question
		res.Inverted = rule.Inverted
		return res
	}
	return r.generic(sp, res, label)
}

func (r *Resolver) section(sp span.Span) Resolution {
	heading := strings.TrimSpace(sp.Heading)
	res := Resolution{Span: sp.Index, Label: heading}
	if rule, ok := r.sections[strings.ToUpper(heading)]; ok {
		res.Rule = RuleSection
		res.Key = rule.Question
		return res
	}
	if question, ok := r.mappings[heading]; ok {
		res.Rule = RuleSection
		res.Key = question
		return res
	}
	if r.strict || heading == "" {
		return unresolved(sp)
	}
	res.Rule = RuleSection
	res.Key = SectionQuestion(heading)
	return res
}

func (r *Resolver) generic(sp span.Span, res Resolution, label string) Resolution {
	if question, ok := r.mappings[label]; ok {
		res.Rule = RuleGeneric
		res.Key = question
		return res
	}
	if r.strict {
		return unresolved(sp)
	}
	res.Rule = RuleGeneric
	res.Key = label
	return res
}

// SectionQuestion synthesises the gate question for an optional section
// without a profile rule.
func SectionQuestion(heading string) string {
	return "Is the " + strings.TrimSpace(heading) + " clause applicable?"
}

func unresolved(sp span.Span) Resolution {
	return Resolution{
		Span:  sp.Index,
		Rule:  RuleUnresolved,
		Key:   sp.Literal,
		Label: sp.Literal,
	}
}

// ByQuestion indexes span indices by every question that affects them, both
// the driving key and the gate. It answers which spans a given answer
// change touches.
func ByQuestion(resolutions []Resolution) map[string][]int {
	out := make(map[string][]int)
	for _, res := range resolutions {
		if !res.Resolved() {
			continue
		}
		out[res.Key] = append(out[res.Key], res.Span)
		if res.Gate != "" && res.Gate != res.Key {
			out[res.Gate] = append(out[res.Gate], res.Span)
		}
	}
	return out
}
