package span

// Kind identifies which delimiter family produced a span.
type Kind uint8

const (
	// KindPlaceholder marks a `[Label]` fill-in-the-blank region.
	KindPlaceholder Kind = iota + 1
	// KindSmallCondition marks a `{...}` or `{/.../}` optional sentence.
	KindSmallCondition
	// KindFollowUp marks an unbracketed sentinel phrase whose rendering is
	// driven by another question (currency code, "other locations", ...).
	KindFollowUp
	// KindBigCondition marks a `(HEADING ...)` optional section.
	KindBigCondition
)

// String returns the kebab-case name used in logs and CLI output.
func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindSmallCondition:
		return "small-condition"
	case KindFollowUp:
		return "follow-up"
	case KindBigCondition:
		return "big-condition"
	default:
		return "unknown"
	}
}

// NoParent is the Parent value of top-level spans.
const NoParent = -1

// Span is one recognised templated region of an immutable template. Offsets
// are byte positions captured at extraction time; Literal always equals
// template[Start:End].
type Span struct {
	Index   int
	Kind    Kind
	Start   int
	End     int
	Literal string
	// Inner is Literal without delimiters. Escaped small conditions drop the
	// slash markers and big conditions drop their heading.
	Inner string
	// Heading is the section heading that opened a big condition.
	Heading string
	// Anchor is the nearest heading preceding the span. An omitted clause is
	// restored right after it, at its original position.
	Anchor string
	// Escaped reports the `{/.../}` small condition form.
	Escaped bool
	// ContentStart and ContentEnd bound the region between the delimiters.
	// For big conditions the heading is part of that region.
	ContentStart int
	ContentEnd   int
	Parent       int
}

// TopLevel reports whether the span is not nested inside another span.
func (s Span) TopLevel() bool {
	return s.Parent == NoParent
}

// Contains reports whether other lies entirely inside the span's content.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.ContentStart && other.End <= s.ContentEnd
}

// ChildIndex groups span indices by parent. Top-level spans are keyed by
// NoParent. Each slice keeps document order.
func ChildIndex(spans []Span) map[int][]int {
	index := make(map[int][]int, len(spans)+1)
	for _, sp := range spans {
		index[sp.Parent] = append(index[sp.Parent], sp.Index)
	}
	return index
}

// Literals returns the distinct literal texts of spans of the given kind in
// document order.
func Literals(spans []Span, kind Kind) []string {
	seen := make(map[string]struct{}, len(spans))
	var out []string
	for _, sp := range spans {
		if sp.Kind != kind {
			continue
		}
		if _, ok := seen[sp.Literal]; ok {
			continue
		}
		seen[sp.Literal] = struct{}{}
		out = append(out, sp.Literal)
	}
	return out
}
