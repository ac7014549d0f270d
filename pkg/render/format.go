package render

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-livedoc/pkg/answer"
)

// FormatBool renders yes/no answers.
func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FormatList joins entries as an English list: "A", "A and B",
// "A, B, and C". Blank entries are skipped.
func FormatList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	switch len(cleaned) {
	case 0:
		return ""
	case 1:
		return cleaned[0]
	case 2:
		return cleaned[0] + " and " + cleaned[1]
	default:
		return strings.Join(cleaned[:len(cleaned)-1], ", ") + ", and " + cleaned[len(cleaned)-1]
	}
}

var listSeparator = regexp.MustCompile(`\s*,\s*(?:and\s+)?|\s+and\s+`)

// SplitList splits a free text answer on commas and the word "and".
func SplitList(s string) []string {
	parts := listSeparator.Split(strings.TrimSpace(s), -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// DisplayText converts an answer to the text substituted for a placeholder.
// ok is false when the answer is unset, blank or an incomplete amount.
func DisplayText(v answer.Value) (string, bool) {
	switch v.Kind() {
	case answer.KindString:
		text, _ := v.Text()
		if strings.TrimSpace(text) == "" {
			return "", false
		}
		return text, true
	case answer.KindBool:
		flag, _ := v.Flag()
		return FormatBool(flag), true
	case answer.KindList:
		items, _ := v.Items()
		text := FormatList(items)
		return text, text != ""
	case answer.KindAmount:
		amount, _ := v.Amount()
		if !amount.Complete() {
			return "", false
		}
		return strings.TrimSpace(amount.Amount) + " " + strings.TrimSpace(amount.Currency), true
	default:
		return "", false
	}
}

// ListText converts an answer to an English list. Strings are split first.
func ListText(v answer.Value) (string, bool) {
	switch v.Kind() {
	case answer.KindString:
		text, _ := v.Text()
		formatted := FormatList(SplitList(text))
		return formatted, formatted != ""
	case answer.KindList:
		items, _ := v.Items()
		formatted := FormatList(items)
		return formatted, formatted != ""
	default:
		return "", false
	}
}
