package span

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultHeadings lists the section headings that open big conditions when
// no WithHeadings option is supplied.
var DefaultHeadings = []string{"PROBATIONARY PERIOD", "PENSION"}

// Option configures Extract.
type Option func(*config)

type config struct {
	headings  []string
	sentinels []string
}

// WithHeadings replaces the headings recognised after an opening `(`.
func WithHeadings(headings ...string) Option {
	return func(cfg *config) {
		cleaned := cleanPhrases(headings)
		if len(cleaned) == 0 {
			return
		}
		cfg.headings = cleaned
	}
}

// WithSentinels registers literal phrases reported as KindFollowUp spans
// wherever they appear in document text.
func WithSentinels(phrases ...string) Option {
	return func(cfg *config) {
		cfg.sentinels = append(cfg.sentinels, cleanPhrases(phrases)...)
	}
}

type family uint8

const (
	allowPlaceholder family = 1 << iota
	allowSmall
	allowBig
	allowSentinel

	allowAll = allowPlaceholder | allowSmall | allowBig | allowSentinel
)

// Extract scans template left to right and returns its spans in document
// order. Families nest strictly (big > small > placeholder/sentinel); the same
// family never nests and the first closing delimiter ends a span. Extract is
// pure: the same template and options always yield the same table.
func Extract(template string, options ...Option) ([]Span, error) {
	cfg := config{headings: DefaultHeadings}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	cfg.headings = longestFirst(cfg.headings)
	cfg.sentinels = longestFirst(cfg.sentinels)

	s := &scanner{src: template, cfg: cfg}
	if err := s.scan(0, len(template), NoParent, allowAll); err != nil {
		return nil, err
	}
	return s.spans, nil
}

type scanner struct {
	src   string
	cfg   config
	spans []Span
}

func (s *scanner) scan(start, end, parent int, allowed family) error {
	pos := start
	for pos < end {
		open, kind := s.nextOpen(pos, end, allowed)
		if open < 0 {
			s.sentinels(pos, end, parent, allowed)
			return nil
		}
		s.sentinels(pos, open, parent, allowed)

		var (
			next int
			err  error
		)
		switch kind {
		case KindPlaceholder:
			next, err = s.placeholder(open, end, parent)
		case KindSmallCondition:
			next, err = s.smallCondition(open, end, parent, allowed)
		case KindBigCondition:
			next, err = s.bigCondition(open, end, parent, allowed)
		}
		if err != nil {
			return err
		}
		pos = next
	}
	return nil
}

func (s *scanner) nextOpen(pos, end int, allowed family) (int, Kind) {
	for i := pos; i < end; i++ {
		switch s.src[i] {
		case '[':
			if allowed&allowPlaceholder != 0 {
				return i, KindPlaceholder
			}
		case '{':
			if allowed&allowSmall != 0 {
				return i, KindSmallCondition
			}
		case '(':
			if allowed&allowBig != 0 {
				if heading, _ := s.headingAt(i+1, end); heading != "" {
					return i, KindBigCondition
				}
			}
		}
	}
	return -1, 0
}

func (s *scanner) placeholder(open, end, parent int) (int, error) {
	closeAt := indexIn(s.src, "]", open+1, end)
	if closeAt < 0 {
		return 0, newUnterminated(s.src, KindPlaceholder, "[", open)
	}
	s.push(Span{
		Kind:         KindPlaceholder,
		Start:        open,
		End:          closeAt + 1,
		Inner:        s.src[open+1 : closeAt],
		ContentStart: open + 1,
		ContentEnd:   closeAt,
		Parent:       parent,
	})
	return closeAt + 1, nil
}

func (s *scanner) smallCondition(open, end, parent int, allowed family) (int, error) {
	escaped := open+1 < end && s.src[open+1] == '/'
	openDelim, closeDelim := "{", "}"
	if escaped {
		openDelim, closeDelim = "{/", "/}"
	}

	contentStart := open + len(openDelim)
	closeAt := indexIn(s.src, closeDelim, contentStart, end)
	if closeAt < 0 {
		return 0, newUnterminated(s.src, KindSmallCondition, openDelim, open)
	}

	idx := s.push(Span{
		Kind:         KindSmallCondition,
		Start:        open,
		End:          closeAt + len(closeDelim),
		Inner:        s.src[contentStart:closeAt],
		Escaped:      escaped,
		ContentStart: contentStart,
		ContentEnd:   closeAt,
		Parent:       parent,
	})

	children := allowed & (allowPlaceholder | allowSentinel)
	if err := s.scan(contentStart, closeAt, idx, children); err != nil {
		return 0, err
	}
	return closeAt + len(closeDelim), nil
}

func (s *scanner) bigCondition(open, end, parent int, allowed family) (int, error) {
	heading, headingEnd := s.headingAt(open+1, end)
	closeAt := closingParen(s.src, headingEnd, end)
	if closeAt < 0 {
		return 0, newUnterminated(s.src, KindBigCondition, "("+heading, open)
	}

	idx := s.push(Span{
		Kind:         KindBigCondition,
		Start:        open,
		End:          closeAt + 1,
		Inner:        strings.TrimSpace(trimLeadingTags(s.src[headingEnd:closeAt])),
		Heading:      heading,
		Anchor:       anchorBefore(s.src[:open]),
		ContentStart: open + 1,
		ContentEnd:   closeAt,
		Parent:       parent,
	})

	children := allowed & (allowSmall | allowPlaceholder | allowSentinel)
	if err := s.scan(open+1, closeAt, idx, children); err != nil {
		return 0, err
	}
	return closeAt + 1, nil
}

// headingAt reports the known heading starting at pos once leading markup
// tags and whitespace are skipped, plus the offset just past it.
func (s *scanner) headingAt(pos, end int) (string, int) {
	j := pos
	for j < end {
		r, size := utf8.DecodeRuneInString(s.src[j:end])
		if unicode.IsSpace(r) {
			j += size
			continue
		}
		if r == '<' {
			closeTag := indexIn(s.src, ">", j, end)
			if closeTag < 0 {
				return "", pos
			}
			j = closeTag + 1
			continue
		}
		break
	}

	rest := s.src[j:end]
	for _, heading := range s.cfg.headings {
		if !strings.HasPrefix(rest, heading) {
			continue
		}
		after := j + len(heading)
		if after < end && isWordByte(s.src[after]) {
			continue
		}
		return heading, after
	}
	return "", pos
}

// sentinels records sentinel phrases found in [start, end), skipping markup
// tags so attribute values never match.
func (s *scanner) sentinels(start, end, parent int, allowed family) {
	if allowed&allowSentinel == 0 || len(s.cfg.sentinels) == 0 {
		return
	}
	for i := start; i < end; {
		if s.src[i] == '<' {
			if closeTag := indexIn(s.src, ">", i, end); closeTag >= 0 {
				i = closeTag + 1
				continue
			}
		}
		if phrase := s.sentinelAt(i, end); phrase != "" {
			s.push(Span{
				Kind:         KindFollowUp,
				Start:        i,
				End:          i + len(phrase),
				Inner:        phrase,
				ContentStart: i,
				ContentEnd:   i + len(phrase),
				Parent:       parent,
			})
			i += len(phrase)
			continue
		}
		i++
	}
}

func (s *scanner) sentinelAt(i, end int) string {
	if i > 0 && isWordByte(s.src[i-1]) {
		return ""
	}
	rest := s.src[i:end]
	for _, phrase := range s.cfg.sentinels {
		if !strings.HasPrefix(rest, phrase) {
			continue
		}
		after := i + len(phrase)
		if after < end && isWordByte(s.src[after]) {
			continue
		}
		return phrase
	}
	return ""
}

func (s *scanner) push(sp Span) int {
	sp.Index = len(s.spans)
	sp.Literal = s.src[sp.Start:sp.End]
	s.spans = append(s.spans, sp)
	return sp.Index
}

func indexIn(src, needle string, from, to int) int {
	if from > to {
		return -1
	}
	idx := strings.Index(src[from:to], needle)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// closingParen finds the ")" that closes a big condition, skipping plain
// parenthetical pairs in the clause body.
func closingParen(src string, from, to int) int {
	depth := 0
	for i := from; i < to; i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

var headingPattern = regexp.MustCompile(`(?is)<h[1-3][^>]*>(.*?)</h[1-3]>`)

func anchorBefore(prefix string) string {
	matches := headingPattern.FindAllStringSubmatch(prefix, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		text := strings.TrimSpace(strings.Trim(StripTags(matches[i][1]), "()"))
		if text != "" {
			return text
		}
	}
	return ""
}

func trimLeadingTags(s string) string {
	for {
		trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
		if !strings.HasPrefix(trimmed, "</") {
			return trimmed
		}
		closeTag := strings.IndexByte(trimmed, '>')
		if closeTag < 0 {
			return trimmed
		}
		s = trimmed[closeTag+1:]
	}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes markup tags, leaving text content.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Normalize removes markup and every whitespace rune so clause texts can be
// compared regardless of line wrapping.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, StripTags(s))
}

func cleanPhrases(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func longestFirst(values []string) []string {
	out := cleanPhrases(values)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
