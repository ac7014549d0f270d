package render

import "fmt"

// Action is the outcome chosen for one span in one render pass.
type Action uint8

const (
	// ActionShowInteractiveUnanswered keeps the span as a clickable marker
	// linked to its question. It is the zero Action.
	ActionShowInteractiveUnanswered Action = iota
	// ActionSubstitute replaces the span with display text (placeholders and
	// follow-ups) or with its delimiter-free content (conditions).
	ActionSubstitute
	// ActionOmit drops the span together with its delimiters.
	ActionOmit
	// ActionShowGreyedOptional keeps the span visible, delimiters included,
	// marked as a pending decision.
	ActionShowGreyedOptional
)

func (a Action) String() string {
	switch a {
	case ActionShowInteractiveUnanswered:
		return "interactive"
	case ActionSubstitute:
		return "substitute"
	case ActionOmit:
		return "omit"
	case ActionShowGreyedOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// Decision is computed fresh on every pass and never cached.
type Decision struct {
	Span   int
	Action Action
	// Text is the display text for a substitution, or the span text shown by
	// a marker.
	Text string
	// QuestionKey links markers back to the question that resolves them.
	QuestionKey string
}

// Warning surfaces an answer that could not be used as given, such as an
// amount missing its currency. The span degrades to its unanswered form.
type Warning struct {
	Span        int
	QuestionKey string
	Message     string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.QuestionKey, w.Message)
}

// Pass is the complete output of one Decide call. Decisions is indexed like
// the span table.
type Pass struct {
	Decisions []Decision
	Warnings  []Warning
}

// Count returns how many decisions took the supplied action.
func (p Pass) Count(action Action) int {
	n := 0
	for _, d := range p.Decisions {
		if d.Action == action {
			n++
		}
	}
	return n
}
