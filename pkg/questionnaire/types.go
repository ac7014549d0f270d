package questionnaire

import (
	"strings"
)

// Type is the input type of a question.
type Type string

const (
	TypeText      Type = "text"
	TypeParagraph Type = "paragraph"
	TypeNumber    Type = "number"
	TypeDate      Type = "date"
	TypeEmail     Type = "email"
	TypeRadio     Type = "radio"
	TypeAmount    Type = "amount"
	TypeList      Type = "list"
)

var knownTypes = map[Type]struct{}{
	TypeText:      {},
	TypeParagraph: {},
	TypeNumber:    {},
	TypeDate:      {},
	TypeEmail:     {},
	TypeRadio:     {},
	TypeAmount:    {},
	TypeList:      {},
}

// ParseType maps a type name to a Type. Unknown names report false.
func ParseType(name string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if t == "boolean" || t == "bool" || t == "yes/no" {
		return TypeRadio, true
	}
	_, ok := knownTypes[t]
	return t, ok
}

// Question is one entry of the questionnaire.
type Question struct {
	// Key is the question text; answers are stored under it.
	Key string `json:"key" yaml:"key"`
	// Label is the template text that produced the question.
	Label    string `json:"label" yaml:"label"`
	Type     Type   `json:"type" yaml:"type"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Help     string `json:"help,omitempty" yaml:"help,omitempty"`
	// Gate names the yes/no question that must be answered true before
	// this question is asked.
	Gate            string `json:"gate,omitempty" yaml:"gate,omitempty"`
	DefaultCurrency string `json:"defaultCurrency,omitempty" yaml:"defaultCurrency,omitempty"`
	// Spans lists the span indices the answer drives.
	Spans []int `json:"spans" yaml:"spans"`
}

// Boolean reports whether the question takes a yes/no answer.
func (q Question) Boolean() bool {
	return q.Type == TypeRadio
}

// Issue is a validation problem with one answer.
type Issue struct {
	Key     string `json:"key" yaml:"key"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	if i.Field != "" {
		return i.Key + " (" + i.Field + "): " + i.Message
	}
	return i.Key + ": " + i.Message
}
