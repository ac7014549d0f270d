package profile

import (
	"strings"

	"github.com/goliatone/go-livedoc/pkg/span"
)

// Format controls how a follow-up answer is turned into display text.
type Format string

const (
	// FormatText substitutes the answer as written.
	FormatText Format = "text"
	// FormatList splits the answer into entries and joins them as an
	// English list.
	FormatList Format = "list"
)

// Profile describes the composite rules of one template. A Profile is
// immutable once returned by Parse or LoadFS.
type Profile struct {
	Name       string                  `json:"name" yaml:"name"`
	Version    string                  `json:"version" yaml:"version"`
	Headings   []string                `json:"headings" yaml:"headings"`
	Aliases    []Alias                 `json:"aliases" yaml:"aliases"`
	Amounts    []AmountRule            `json:"amounts" yaml:"amounts"`
	FollowUps  []FollowUp              `json:"followUps" yaml:"followUps"`
	Conditions []Condition             `json:"conditions" yaml:"conditions"`
	Sections   []Section               `json:"sections" yaml:"sections"`
	Questions  map[string]QuestionHint `json:"questions" yaml:"questions"`

	Source string `json:"-" yaml:"-"`
}

// Alias binds a placeholder label to a question whose text differs from it.
type Alias struct {
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Question    string `json:"question" yaml:"question"`
}

// AmountRule binds a placeholder to an amount-and-currency question. Every
// occurrence of the currency sentinel is substituted with the currency part.
type AmountRule struct {
	Placeholder     string `json:"placeholder" yaml:"placeholder"`
	Question        string `json:"question" yaml:"question"`
	Currency        string `json:"currency" yaml:"currency"`
	DefaultCurrency string `json:"defaultCurrency,omitempty" yaml:"defaultCurrency,omitempty"`
}

// FollowUp binds an unbracketed sentinel phrase to a dependent question,
// optionally gated by a boolean question.
type FollowUp struct {
	Sentinel string `json:"sentinel" yaml:"sentinel"`
	Gate     string `json:"gate,omitempty" yaml:"gate,omitempty"`
	Question string `json:"question" yaml:"question"`
	Format   Format `json:"format,omitempty" yaml:"format,omitempty"`
}

// Condition binds an optional sentence to its gate question. Inverted
// conditions are shown when the gate is false.
type Condition struct {
	Text     string `json:"text" yaml:"text"`
	Question string `json:"question" yaml:"question"`
	Inverted bool   `json:"inverted,omitempty" yaml:"inverted,omitempty"`
}

// Section binds an optional section heading to its gate question.
type Section struct {
	Heading  string `json:"heading" yaml:"heading"`
	Question string `json:"question" yaml:"question"`
}

// QuestionHint overrides the inferred questionnaire entry for a question.
type QuestionHint struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Help     string `json:"help,omitempty" yaml:"help,omitempty"`
}

// Sentinels returns every phrase the extractor must report as a follow-up
// span: currency codes of amount rules and follow-up sentinels.
func (p *Profile) Sentinels() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.Amounts)+len(p.FollowUps))
	for _, rule := range p.Amounts {
		if rule.Currency != "" {
			out = append(out, rule.Currency)
		}
	}
	for _, rule := range p.FollowUps {
		out = append(out, rule.Sentinel)
	}
	return out
}

// ExtractOptions returns the span extractor configuration implied by the
// profile.
func (p *Profile) ExtractOptions() []span.Option {
	if p == nil {
		return nil
	}
	var opts []span.Option
	if len(p.Headings) > 0 {
		opts = append(opts, span.WithHeadings(p.Headings...))
	}
	if sentinels := p.Sentinels(); len(sentinels) > 0 {
		opts = append(opts, span.WithSentinels(sentinels...))
	}
	return opts
}

// Hint returns the questionnaire hint for question.
func (p *Profile) Hint(question string) (QuestionHint, bool) {
	if p == nil || len(p.Questions) == 0 {
		return QuestionHint{}, false
	}
	hint, ok := p.Questions[question]
	return hint, ok
}

// Gates returns the boolean questions that gate follow-ups, conditions and
// sections, in profile order without duplicates.
func (p *Profile) Gates() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" {
			return
		}
		if _, ok := seen[q]; ok {
			return
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	for _, rule := range p.FollowUps {
		add(rule.Gate)
	}
	for _, rule := range p.Conditions {
		add(rule.Question)
	}
	for _, rule := range p.Sections {
		add(rule.Question)
	}
	return out
}
