package questionnaire

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-livedoc/pkg/answer"
)

const (
	numberPattern   = `^\s*-?[0-9][0-9,]*(\.[0-9]+)?\s*$`
	currencyPattern = `^\s*[A-Za-z]{3}\s*$`
	datePattern     = `^\s*([0-9]{4}-[0-9]{2}-[0-9]{2}|[0-9]{1,2}[/.-][0-9]{1,2}[/.-][0-9]{2,4}|[0-9]{1,2}(st|nd|rd|th)?\s+[A-Za-z]+,?\s+[0-9]{4}|[A-Za-z]+\s+[0-9]{1,2}(st|nd|rd|th)?,?\s+[0-9]{4})\s*$`
)

var patternMessages = map[string]string{
	numberPattern:                   "must be a number",
	currencyPattern:                 "must be a three-letter currency code",
	datePattern:                     "must be a date such as 2024-03-01 or 1 March 2024",
	openapi3.FormatOfStringForEmail: "must be an email address",
}

func schemaFor(question Question) *openapi3.Schema {
	var schema *openapi3.Schema
	switch question.Type {
	case TypeRadio:
		schema = openapi3.NewBoolSchema()
	case TypeNumber:
		schema = openapi3.NewStringSchema().WithPattern(numberPattern)
	case TypeDate:
		schema = openapi3.NewStringSchema().WithPattern(datePattern)
	case TypeEmail:
		schema = openapi3.NewStringSchema().WithPattern(openapi3.FormatOfStringForEmail)
	case TypeAmount:
		schema = openapi3.NewObjectSchema().
			WithProperty("amount", openapi3.NewStringSchema().WithPattern(numberPattern)).
			WithProperty("currency", openapi3.NewStringSchema().WithPattern(currencyPattern)).
			WithRequired([]string{"amount", "currency"})
		if question.DefaultCurrency != "" {
			schema.Properties["currency"].Value.Default = question.DefaultCurrency
		}
	case TypeList:
		schema = openapi3.NewOneOfSchema(
			openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema().WithMinLength(1)).WithMinItems(1),
			openapi3.NewStringSchema().WithMinLength(1),
		)
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = question.Label
	schema.Description = question.Help
	return schema
}

// Schema returns the answer schema of one question.
func (q *Questionnaire) Schema(key string) (*openapi3.Schema, bool) {
	schema, ok := q.schemas[key]
	return schema, ok
}

// DocumentSchema describes the full answer set as one object schema keyed
// by question text. Required questions without a gate are required
// properties.
func (q *Questionnaire) DocumentSchema() *openapi3.Schema {
	doc := openapi3.NewObjectSchema()
	var required []string
	for _, question := range q.questions {
		doc.WithProperty(question.Key, q.schemas[question.Key])
		if question.Required && question.Gate == "" {
			required = append(required, question.Key)
		}
	}
	sort.Strings(required)
	if len(required) > 0 {
		doc.WithRequired(required)
	}
	return doc
}

// ValidateValue checks one answer against its question schema. Unknown keys
// and blank answers are accepted.
func (q *Questionnaire) ValidateValue(key string, value answer.Value) []Issue {
	schema, ok := q.schemas[key]
	if !ok || value.Blank() {
		return nil
	}
	err := schema.VisitJSON(value.Interface(), openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	return issuesFrom(key, err)
}

// Validate checks every answered, active question. Answers to unknown keys
// are ignored; missing required answers are reported by Missing, not here.
func (q *Questionnaire) Validate(answers answer.Reader) []Issue {
	var issues []Issue
	for _, question := range q.questions {
		if !q.Active(question, answers) {
			continue
		}
		issues = append(issues, q.ValidateValue(question.Key, answer.Lookup(answers, question.Key))...)
	}
	return issues
}

func issuesFrom(key string, err error) []Issue {
	switch typed := err.(type) {
	case openapi3.MultiError:
		var out []Issue
		for _, inner := range typed {
			out = append(out, issuesFrom(key, inner)...)
		}
		return out
	case *openapi3.SchemaError:
		return []Issue{schemaIssue(key, typed)}
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{schemaIssue(key, schemaErr)}
	}
	return []Issue{{Key: key, Message: err.Error()}}
}

func schemaIssue(key string, err *openapi3.SchemaError) Issue {
	message := strings.TrimSpace(err.Reason)
	if err.SchemaField == "pattern" && err.Schema != nil {
		if friendly, ok := patternMessages[err.Schema.Pattern]; ok {
			message = friendly
		}
	}
	if message == "" {
		message = fmt.Sprintf("does not match %q", err.SchemaField)
	}
	return Issue{
		Key:     key,
		Field:   strings.Join(err.JSONPointer(), "/"),
		Message: message,
	}
}
