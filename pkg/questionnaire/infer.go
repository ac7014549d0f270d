package questionnaire

import (
	"strings"

	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/resolve"
)

var (
	yesNoPrefixes  = []string{"is ", "are ", "does ", "do ", "will ", "has ", "have ", "can ", "should "}
	numberKeywords = []string{"number", "hours", "days", "weeks", "months", "percentage", "how many"}
)

// InferType picks an input type from the resolution rule, then from the
// wording of the question and its label.
func InferType(res resolve.Resolution) Type {
	switch res.Rule {
	case resolve.RuleAmount, resolve.RuleCurrency:
		return TypeAmount
	case resolve.RuleCondition, resolve.RuleSection:
		return TypeRadio
	case resolve.RuleFollowUp:
		if res.Format == profile.FormatList {
			return TypeList
		}
	}
	return inferFromText(res.Key, res.Label)
}

func inferFromText(key, label string) Type {
	lowerKey := strings.ToLower(strings.TrimSpace(key))
	lowerLabel := strings.ToLower(strings.TrimSpace(label))

	if strings.HasSuffix(lowerKey, "?") {
		for _, prefix := range yesNoPrefixes {
			if strings.HasPrefix(lowerKey, prefix) {
				return TypeRadio
			}
		}
	}
	for _, text := range []string{lowerLabel, lowerKey} {
		switch {
		case strings.Contains(text, "email"):
			return TypeEmail
		case strings.Contains(text, "date"):
			return TypeDate
		case strings.Contains(text, "address"), strings.Contains(text, "description"), strings.Contains(text, "policy"):
			return TypeParagraph
		}
		for _, keyword := range numberKeywords {
			if strings.Contains(text, keyword) {
				return TypeNumber
			}
		}
	}
	return TypeText
}
