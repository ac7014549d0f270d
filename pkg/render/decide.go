package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/resolve"
	"github.com/goliatone/go-livedoc/pkg/span"
)

// Decide computes one decision per span from the current answers. It never
// fails on answer content: unresolved spans and malformed answers degrade to
// their unanswered form, the latter with a Warning. The only error is a span
// table and resolution table that do not line up.
func Decide(spans []span.Span, resolutions []resolve.Resolution, answers answer.Reader) (Pass, error) {
	if len(spans) != len(resolutions) {
		return Pass{}, fmt.Errorf("render: %d spans but %d resolutions", len(spans), len(resolutions))
	}

	d := decider{answers: answers, seen: make(map[string]struct{})}
	pass := Pass{Decisions: make([]Decision, len(spans))}
	for i, sp := range spans {
		if resolutions[i].Span != sp.Index || sp.Index != i {
			return Pass{}, fmt.Errorf("render: resolution %d does not belong to span %d", i, sp.Index)
		}
		pass.Decisions[i] = d.decide(sp, resolutions[i])
	}
	pass.Warnings = d.warnings
	return pass, nil
}

type decider struct {
	answers  answer.Reader
	warnings []Warning
	seen     map[string]struct{}
}

func (d *decider) decide(sp span.Span, res resolve.Resolution) Decision {
	if !res.Resolved() {
		return interactive(sp, sp.Literal, sp.Literal)
	}

	switch res.Rule {
	case resolve.RuleAmount:
		return d.amount(sp, res)
	case resolve.RuleCurrency:
		return d.currency(sp, res)
	case resolve.RuleFollowUp:
		return d.followUp(sp, res)
	case resolve.RuleSection:
		return d.section(sp, res)
	}

	if sp.Kind == span.KindSmallCondition {
		return d.condition(sp, res)
	}
	if sp.Kind == span.KindBigCondition {
		return d.section(sp, res)
	}
	return d.placeholder(sp, res)
}

func (d *decider) placeholder(sp span.Span, res resolve.Resolution) Decision {
	value := d.lookup(res.Key)
	if text, ok := DisplayText(value); ok {
		return substitute(sp, text, res.Key)
	}
	if value.Kind() == answer.KindAmount && !value.Blank() {
		d.warn(sp, res.Key, "amount answer is missing its amount or currency")
	}
	return interactive(sp, res.Label, res.Key)
}

func (d *decider) amount(sp span.Span, res resolve.Resolution) Decision {
	value := d.lookup(res.Key)
	switch value.Kind() {
	case answer.KindUnset:
		return interactive(sp, res.Label, res.Key)
	case answer.KindAmount:
		amount, _ := value.Amount()
		if amount.Complete() {
			return substitute(sp, strings.TrimSpace(amount.Amount), res.Key)
		}
		if !value.Blank() {
			d.warn(sp, res.Key, "amount answer is missing its amount or currency")
		}
		return interactive(sp, res.Label, res.Key)
	default:
		if !value.Blank() {
			d.warn(sp, res.Key, fmt.Sprintf("expected an amount and currency, got a %s answer", value.Kind()))
		}
		return interactive(sp, res.Label, res.Key)
	}
}

func (d *decider) currency(sp span.Span, res resolve.Resolution) Decision {
	value := d.lookup(res.Key)
	if amount, ok := value.Amount(); ok && amount.Complete() {
		return substitute(sp, strings.TrimSpace(amount.Currency), res.Key)
	}
	return interactive(sp, res.Label, res.Key)
}

func (d *decider) followUp(sp span.Span, res resolve.Resolution) Decision {
	if res.Gate != "" {
		gate := d.lookup(res.Gate)
		open, ok := gate.Flag()
		if !ok {
			if !gate.Blank() {
				d.warn(sp, res.Gate, fmt.Sprintf("expected a yes/no answer, got a %s answer", gate.Kind()))
			}
			return interactive(sp, res.Label, res.Key)
		}
		if !open {
			return interactive(sp, res.Label, res.Key)
		}
	}

	value := d.lookup(res.Key)
	var (
		text string
		ok   bool
	)
	if res.Format == profile.FormatList {
		text, ok = ListText(value)
	} else {
		text, ok = DisplayText(value)
	}
	if !ok {
		return interactive(sp, res.Label, res.Key)
	}
	return substitute(sp, text, res.Key)
}

func (d *decider) condition(sp span.Span, res resolve.Resolution) Decision {
	flag, state := d.flag(sp, res.Key)
	switch state {
	case flagSet:
		if flag != res.Inverted {
			return substitute(sp, sp.Inner, res.Key)
		}
		return Decision{Span: sp.Index, Action: ActionOmit, QuestionKey: res.Key}
	default:
		return Decision{Span: sp.Index, Action: ActionShowGreyedOptional, Text: sp.Literal, QuestionKey: res.Key}
	}
}

func (d *decider) section(sp span.Span, res resolve.Resolution) Decision {
	if flag, state := d.flag(sp, res.Key); state == flagSet && flag {
		return substitute(sp, sp.Inner, res.Key)
	}
	return Decision{Span: sp.Index, Action: ActionOmit, QuestionKey: res.Key}
}

type flagState uint8

const (
	flagUnset flagState = iota
	flagSet
	flagInvalid
)

// flag reads a gate answer. Null and blank answers are unset, never false.
func (d *decider) flag(sp span.Span, key string) (bool, flagState) {
	value := d.lookup(key)
	if flag, ok := value.Flag(); ok {
		return flag, flagSet
	}
	if value.Blank() {
		return false, flagUnset
	}
	d.warn(sp, key, fmt.Sprintf("expected a yes/no answer, got a %s answer", value.Kind()))
	return false, flagInvalid
}

func (d *decider) lookup(key string) answer.Value {
	return answer.Lookup(d.answers, key)
}

func (d *decider) warn(sp span.Span, key, message string) {
	id := key + "\x00" + message
	if _, ok := d.seen[id]; ok {
		return
	}
	d.seen[id] = struct{}{}
	d.warnings = append(d.warnings, Warning{Span: sp.Index, QuestionKey: key, Message: message})
}

func substitute(sp span.Span, text, key string) Decision {
	return Decision{Span: sp.Index, Action: ActionSubstitute, Text: text, QuestionKey: key}
}

func interactive(sp span.Span, label, key string) Decision {
	return Decision{Span: sp.Index, Action: ActionShowInteractiveUnanswered, Text: label, QuestionKey: key}
}
