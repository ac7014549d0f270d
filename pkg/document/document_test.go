package document

import "testing"

func TestNewDocument_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewDocument(nil, []byte("x")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceInline("x"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := NewDocument(SourceInline("x"), []byte{0xff, 0xfe}); err == nil {
		t.Fatalf("expected error for invalid UTF-8")
	}
}

func TestDocument_RawIsCopied(t *testing.T) {
	t.Parallel()

	payload := []byte("[Employer Name]")
	doc := MustNewDocument(SourceInline("agreement"), payload)
	payload[0] = '('

	raw := doc.Raw()
	raw[1] = 'X'
	if doc.Text() != "[Employer Name]" {
		t.Fatalf("document must not share memory with callers, got %q", doc.Text())
	}
}

func TestDocument_Name(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  Source
		want string
	}{
		{src: SourceFromFile("templates/employment-agreement.html"), want: "employment-agreement"},
		{src: SourceFromFS("agreement.tpl"), want: "agreement"},
		{src: SourceFromURL("https://example.com/docs/offer.html?v=2"), want: "offer"},
		{src: SourceInline(""), want: "inline"},
	}
	for _, tc := range cases {
		doc := MustNewDocument(tc.src, []byte("text"))
		if got := doc.Name(); got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.src.Location(), tc.want, got)
		}
	}
}

func TestSourceFromURL_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	SourceFromURL("not a url")
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		kind    SourceKind
		wantErr bool
	}{
		{raw: " templates/agreement.html ", kind: SourceKindFile},
		{raw: "https://example.com/agreement.html", kind: SourceKindURL},
		{raw: "https://exa mple.com/doc.html", wantErr: true},
		{raw: "   ", wantErr: true},
	}
	for _, tc := range cases {
		src, err := ParseSource(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %v", tc.raw, src)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.raw, err)
		}
		if src.Kind() != tc.kind {
			t.Fatalf("%q: want kind %s, got %s", tc.raw, tc.kind, src.Kind())
		}
	}
}
