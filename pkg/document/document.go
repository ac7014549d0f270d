package document

import (
	"errors"
	"path"
	"strings"
	"unicode/utf8"
)

// Source identifies where a template document originated so loaders can
// operate on files, fs.FS entries or URLs without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

// Document wraps the raw template text and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document while validating the inputs. The payload
// must be UTF-8 text.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("document: template is empty")
	}
	if !utf8.Valid(raw) {
		return Document{}, errors.New("document: template is not valid UTF-8")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// FromString wraps inline template text.
func FromString(name, template string) (Document, error) {
	return NewDocument(SourceInline(name), []byte(template))
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the template payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Text returns the template as a string.
func (d Document) Text() string {
	return string(d.raw)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// IsZero reports whether the document was never loaded.
func (d Document) IsZero() bool {
	return d.source == nil && len(d.raw) == 0
}

// Remote reports whether the document was fetched over HTTP. Remote
// templates are untrusted and get sanitised on HTML output.
func (d Document) Remote() bool {
	return d.source != nil && d.source.Kind() == SourceKindURL
}

// Name returns a short display name derived from the location.
func (d Document) Name() string {
	loc := d.Location()
	if loc == "" {
		return ""
	}
	if d.source.Kind() == SourceKindURL {
		loc = strings.SplitN(loc, "?", 2)[0]
	}
	base := path.Base(strings.ReplaceAll(loc, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
