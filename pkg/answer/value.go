package answer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindUnset is the zero Value: no answer, or an explicit null.
	KindUnset Kind = iota
	KindString
	KindBool
	KindAmount
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindAmount:
		return "amount"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Amount is the structured answer used by salary style questions.
type Amount struct {
	Amount   string `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

// Complete reports whether both sub-fields carry text.
func (a Amount) Complete() bool {
	return strings.TrimSpace(a.Amount) != "" && strings.TrimSpace(a.Currency) != ""
}

// Value is a tagged union over the answer shapes a question can hold. The
// zero value is unset.
type Value struct {
	kind   Kind
	text   string
	flag   bool
	amount Amount
	items  []string
}

// Null returns the unset value.
func Null() Value { return Value{} }

// String wraps a free text answer.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Bool wraps a yes/no answer.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// AmountOf wraps an amount-and-currency answer.
func AmountOf(amount, currency string) Value {
	return Value{kind: KindAmount, amount: Amount{Amount: amount, Currency: currency}}
}

// List wraps a multi-entry answer such as additional work locations.
func List(items ...string) Value {
	return Value{kind: KindList, items: append([]string(nil), items...)}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsUnset reports whether the value carries no answer.
func (v Value) IsUnset() bool { return v.kind == KindUnset }

// Text returns the string payload and whether the value is a string.
func (v Value) Text() (string, bool) { return v.text, v.kind == KindString }

// Flag returns the boolean payload and whether the value is a boolean.
func (v Value) Flag() (bool, bool) { return v.flag, v.kind == KindBool }

// Amount returns the structured payload and whether the value is an amount.
func (v Value) Amount() (Amount, bool) { return v.amount, v.kind == KindAmount }

// Items returns a copy of the list payload and whether the value is a list.
func (v Value) Items() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string(nil), v.items...), true
}

// Blank reports whether the value is unset or carries only whitespace.
// Booleans are never blank, including false.
func (v Value) Blank() bool {
	switch v.kind {
	case KindUnset:
		return true
	case KindString:
		return strings.TrimSpace(v.text) == ""
	case KindAmount:
		return strings.TrimSpace(v.amount.Amount) == "" && strings.TrimSpace(v.amount.Currency) == ""
	case KindList:
		for _, item := range v.items {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interface converts the value into the JSON-like shape used by schema
// validation and serialisation.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindBool:
		return v.flag
	case KindAmount:
		return map[string]any{"amount": v.amount.Amount, "currency": v.amount.Currency}
	case KindList:
		items := make([]any, 0, len(v.items))
		for _, item := range v.items {
			items = append(items, item)
		}
		return items
	default:
		return nil
	}
}

// Equal compares two values structurally.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.text == other.text
	case KindBool:
		return v.flag == other.flag
	case KindAmount:
		return v.amount == other.amount
	case KindList:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if v.items[i] != other.items[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("answer.String(%q)", v.text)
	case KindBool:
		return fmt.Sprintf("answer.Bool(%t)", v.flag)
	case KindAmount:
		return fmt.Sprintf("answer.AmountOf(%q, %q)", v.amount.Amount, v.amount.Currency)
	case KindList:
		return fmt.Sprintf("answer.List(%q)", v.items)
	default:
		return "answer.Null()"
	}
}

// MarshalJSON encodes the value using its natural JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindAmount {
		return json.Marshal(v.amount)
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes strings, booleans, null, string arrays and
// amount objects. Numbers are kept as their literal text.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("answer: decode json value: %w", err)
	}
	decoded, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalYAML encodes the value using its natural YAML shape.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == KindAmount {
		return v.amount, nil
	}
	return v.Interface(), nil
}

// UnmarshalYAML decodes the same shapes as UnmarshalJSON from a YAML node.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			*v = Null()
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return fmt.Errorf("answer: decode yaml bool: %w", err)
			}
			*v = Bool(b)
		default:
			*v = String(node.Value)
		}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("answer: decode yaml list: %w", err)
		}
		*v = List(items...)
		return nil
	case yaml.MappingNode:
		var amount Amount
		if err := node.Decode(&amount); err != nil {
			return fmt.Errorf("answer: decode yaml amount: %w", err)
		}
		*v = Value{kind: KindAmount, amount: amount}
		return nil
	case yaml.AliasNode:
		if node.Alias == nil {
			return fmt.Errorf("answer: dangling yaml alias")
		}
		return v.UnmarshalYAML(node.Alias)
	default:
		return fmt.Errorf("answer: unsupported yaml node kind %d", node.Kind)
	}
}

func fromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case json.Number:
		return String(typed.String()), nil
	case float64:
		return String(strconv.FormatFloat(typed, 'f', -1, 64)), nil
	case []any:
		items := make([]string, 0, len(typed))
		for i, entry := range typed {
			text, ok := entry.(string)
			if !ok {
				return Value{}, fmt.Errorf("answer: list entry %d is %T, want string", i, entry)
			}
			items = append(items, text)
		}
		return List(items...), nil
	case map[string]any:
		var amount Amount
		if raw, ok := typed["amount"]; ok && raw != nil {
			amount.Amount = scalarText(raw)
		}
		if raw, ok := typed["currency"]; ok && raw != nil {
			amount.Currency = scalarText(raw)
		}
		return Value{kind: KindAmount, amount: amount}, nil
	default:
		return Value{}, fmt.Errorf("answer: unsupported value type %T", raw)
	}
}

func scalarText(raw any) string {
	switch typed := raw.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
