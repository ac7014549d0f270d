package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/questionnaire"
	"github.com/goliatone/go-livedoc/pkg/render"
)

// Option configures an Asker.
type Option func(*Asker)

// WithDriver swaps the terminal driver.
func WithDriver(driver Driver) Option {
	return func(a *Asker) {
		if driver != nil {
			a.driver = driver
		}
	}
}

// WithSkipAnswered leaves questions that already carry an answer alone.
func WithSkipAnswered(skip bool) Option {
	return func(a *Asker) {
		a.skipAnswered = skip
	}
}

// WithOnAnswer registers a callback invoked after every recorded answer.
func WithOnAnswer(fn func(key string, value answer.Value)) Option {
	return func(a *Asker) {
		a.onAnswer = fn
	}
}

// Asker drives a questionnaire through a Driver.
type Asker struct {
	driver       Driver
	skipAnswered bool
	onAnswer     func(string, answer.Value)
}

// New constructs an Asker with the survey driver unless one is supplied.
func New(options ...Option) *Asker {
	a := &Asker{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	if a.driver == nil {
		a.driver = NewSurveyDriver(nil)
	}
	return a
}

// Ask prompts for every active question in order and writes answers into
// store. Blank answers to optional questions clear any previous answer.
func (a *Asker) Ask(ctx context.Context, q *questionnaire.Questionnaire, store *answer.Store) error {
	if ctx == nil {
		return errors.New("prompt: context is required")
	}
	if q == nil {
		return ErrNoQuestionnaire
	}
	if store == nil {
		return errors.New("prompt: answer store is required")
	}

	for _, question := range q.Questions() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !q.Active(question, store) {
			continue
		}
		current := answer.Lookup(store, question.Key)
		if a.skipAnswered && !current.Blank() {
			continue
		}

		value, err := a.askOne(ctx, q, question, current)
		if err != nil {
			return err
		}
		if value.Blank() {
			store.Clear(question.Key)
			continue
		}
		store.Set(question.Key, value)
		if a.onAnswer != nil {
			a.onAnswer(question.Key, value)
		}
	}

	if missing := q.Missing(store); len(missing) > 0 {
		return a.driver.Info(ctx, "Unanswered: "+strings.Join(missing, "; "))
	}
	return nil
}

func (a *Asker) askOne(ctx context.Context, q *questionnaire.Questionnaire, question questionnaire.Question, current answer.Value) (answer.Value, error) {
	switch question.Type {
	case questionnaire.TypeRadio:
		flag, _ := current.Flag()
		ok, err := a.driver.Confirm(ctx, ConfirmConfig{
			Message: question.Key,
			Default: flag,
			Help:    question.Help,
		})
		if err != nil {
			return answer.Null(), err
		}
		return answer.Bool(ok), nil

	case questionnaire.TypeAmount:
		return a.askAmount(ctx, q, question, current)

	case questionnaire.TypeList:
		text, _ := render.ListText(current)
		raw, err := a.driver.Input(ctx, InputConfig{
			Message:   question.Key,
			Default:   text,
			Help:      helpText(question.Help, "Separate entries with commas."),
			Validator: requiredValidator(question),
		})
		if err != nil {
			return answer.Null(), err
		}
		items := render.SplitList(raw)
		if len(items) == 0 {
			return answer.Null(), nil
		}
		return answer.List(items...), nil

	case questionnaire.TypeParagraph:
		text, _ := current.Text()
		raw, err := a.driver.TextArea(ctx, TextAreaConfig{
			Message:   question.Key,
			Default:   text,
			Help:      question.Help,
			Validator: textValidator(q, question),
		})
		if err != nil {
			return answer.Null(), err
		}
		return answer.String(strings.TrimSpace(raw)), nil

	default:
		text, _ := current.Text()
		raw, err := a.driver.Input(ctx, InputConfig{
			Message:   question.Key,
			Default:   text,
			Help:      question.Help,
			Validator: textValidator(q, question),
		})
		if err != nil {
			return answer.Null(), err
		}
		return answer.String(strings.TrimSpace(raw)), nil
	}
}

func (a *Asker) askAmount(ctx context.Context, q *questionnaire.Questionnaire, question questionnaire.Question, current answer.Value) (answer.Value, error) {
	existing, _ := current.Amount()

	amount, err := a.driver.Input(ctx, InputConfig{
		Message:   question.Key,
		Default:   existing.Amount,
		Help:      question.Help,
		Validator: fieldValidator(q, question, "amount"),
	})
	if err != nil {
		return answer.Null(), err
	}
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return answer.Null(), nil
	}

	currency := existing.Currency
	if currency == "" {
		currency = question.DefaultCurrency
	}
	currency, err = a.driver.Input(ctx, InputConfig{
		Message:   "Currency",
		Default:   currency,
		Help:      "Three-letter currency code, for example USD.",
		Validator: fieldValidator(q, question, "currency"),
	})
	if err != nil {
		return answer.Null(), err
	}
	return answer.AmountOf(amount, strings.ToUpper(strings.TrimSpace(currency))), nil
}

var errRequired = errors.New("an answer is required")

func requiredValidator(question questionnaire.Question) func(string) error {
	return func(s string) error {
		if question.Required && strings.TrimSpace(s) == "" {
			return errRequired
		}
		return nil
	}
}

func textValidator(q *questionnaire.Questionnaire, question questionnaire.Question) func(string) error {
	required := requiredValidator(question)
	return func(s string) error {
		if err := required(s); err != nil {
			return err
		}
		if issues := q.ValidateValue(question.Key, answer.String(strings.TrimSpace(s))); len(issues) > 0 {
			return errors.New(issues[0].Message)
		}
		return nil
	}
}

// fieldValidator checks one sub-field of an amount answer, filling the
// other with a placeholder that always passes.
func fieldValidator(q *questionnaire.Questionnaire, question questionnaire.Question, field string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if field == "amount" && !question.Required {
				return nil
			}
			return errRequired
		}
		probe := answer.AmountOf(s, "USD")
		if field == "currency" {
			probe = answer.AmountOf("1", s)
		}
		for _, issue := range q.ValidateValue(question.Key, probe) {
			if issue.Field == field {
				return errors.New(issue.Message)
			}
		}
		return nil
	}
}

func helpText(help, fallback string) string {
	if strings.TrimSpace(help) != "" {
		return help
	}
	return fallback
}
