package questionnaire

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/resolve"
)

// Questionnaire is the ordered question list of one template. It is
// immutable after Build and safe for concurrent use.
type Questionnaire struct {
	questions []Question
	index     map[string]int
	schemas   map[string]*openapi3.Schema
}

// Build derives the questionnaire from a resolution table. Questions appear
// in document order of their first span; a gate question is placed before
// the first question it unlocks. Unresolved spans produce no question.
func Build(resolutions []resolve.Resolution, p *profile.Profile) *Questionnaire {
	q := &Questionnaire{
		index:   make(map[string]int),
		schemas: make(map[string]*openapi3.Schema),
	}
	for _, res := range resolutions {
		if !res.Resolved() || strings.TrimSpace(res.Key) == "" {
			continue
		}
		if res.Gate != "" {
			q.add(Question{Key: res.Gate, Label: res.Label, Type: TypeRadio}, res.Span, p)
		}
		q.add(Question{
			Key:             res.Key,
			Label:           res.Label,
			Type:            InferType(res),
			Gate:            res.Gate,
			DefaultCurrency: res.DefaultCurrency,
		}, res.Span, p)
	}
	for i := range q.questions {
		q.schemas[q.questions[i].Key] = schemaFor(q.questions[i])
	}
	return q
}

func (q *Questionnaire) add(question Question, spanIndex int, p *profile.Profile) {
	if i, ok := q.index[question.Key]; ok {
		existing := &q.questions[i]
		if len(existing.Spans) == 0 || existing.Spans[len(existing.Spans)-1] != spanIndex {
			existing.Spans = append(existing.Spans, spanIndex)
		}
		if existing.DefaultCurrency == "" {
			existing.DefaultCurrency = question.DefaultCurrency
		}
		return
	}
	if hint, ok := p.Hint(question.Key); ok {
		if t, known := ParseType(hint.Type); known {
			question.Type = t
		}
		question.Required = hint.Required
		question.Help = hint.Help
	}
	question.Spans = []int{spanIndex}
	q.index[question.Key] = len(q.questions)
	q.questions = append(q.questions, question)
}

// Questions returns a copy of the question list.
func (q *Questionnaire) Questions() []Question {
	out := make([]Question, len(q.questions))
	for i, question := range q.questions {
		question.Spans = append([]int(nil), question.Spans...)
		out[i] = question
	}
	return out
}

// Len reports the number of questions.
func (q *Questionnaire) Len() int {
	return len(q.questions)
}

// Get returns the question stored under key.
func (q *Questionnaire) Get(key string) (Question, bool) {
	i, ok := q.index[key]
	if !ok {
		return Question{}, false
	}
	question := q.questions[i]
	question.Spans = append([]int(nil), question.Spans...)
	return question, true
}

// Active reports whether the question should be asked given the current
// answers: it has no gate, or its gate is answered yes.
func (q *Questionnaire) Active(question Question, answers answer.Reader) bool {
	if question.Gate == "" {
		return true
	}
	open, ok := answer.Lookup(answers, question.Gate).Flag()
	return ok && open
}

// ActiveQuestions lists the questions that should be asked now.
func (q *Questionnaire) ActiveQuestions(answers answer.Reader) []Question {
	var out []Question
	for _, question := range q.Questions() {
		if q.Active(question, answers) {
			out = append(out, question)
		}
	}
	return out
}

// Missing lists the keys of required, active questions without an answer.
func (q *Questionnaire) Missing(answers answer.Reader) []string {
	var out []string
	for _, question := range q.questions {
		if !question.Required || !q.Active(question, answers) {
			continue
		}
		if answer.Lookup(answers, question.Key).Blank() {
			out = append(out, question.Key)
		}
	}
	return out
}

// Complete reports whether every required, active question is answered.
func (q *Questionnaire) Complete(answers answer.Reader) bool {
	return len(q.Missing(answers)) == 0
}
