package span

import (
	"errors"
	"fmt"
)

// ErrUnterminatedSpan is matched by every *UnterminatedSpanError.
var ErrUnterminatedSpan = errors.New("span: unterminated span")

// UnterminatedSpanError reports a delimiter that opened without a matching
// close before the end of the document (or of its enclosing span).
type UnterminatedSpanError struct {
	Kind   Kind
	Open   string
	Offset int
	Line   int
	Column int
}

func (e *UnterminatedSpanError) Error() string {
	return fmt.Sprintf("span: unterminated %s %q at line %d, column %d", e.Kind, e.Open, e.Line, e.Column)
}

// Is lets errors.Is match ErrUnterminatedSpan.
func (e *UnterminatedSpanError) Is(target error) bool {
	return target == ErrUnterminatedSpan
}

func newUnterminated(src string, kind Kind, open string, offset int) *UnterminatedSpanError {
	line, column := position(src, offset)
	return &UnterminatedSpanError{
		Kind:   kind,
		Open:   open,
		Offset: offset,
		Line:   line,
		Column: column,
	}
}

// position converts a byte offset into a 1-based line and rune column.
func position(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, column := 1, 1
	for _, r := range src[:offset] {
		if r == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
