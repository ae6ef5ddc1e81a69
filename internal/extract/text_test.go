package extract

import (
	"strings"
	"testing"
)

func TestText_StripsMarkupAndScripts(t *testing.T) {
	html := []byte(`<html><head><style>body{color:red}</style></head>
	<body><script>var x = 1;</script><h1>Cafe A</h1><p>Fresh   roasted
	beans.</p></body></html>`)

	got := Text(html, 0)
	want := "Cafe A Fresh roasted beans."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestText_TruncatesToLimit(t *testing.T) {
	html := []byte("<p>" + strings.Repeat("word ", 300) + "</p>")

	got := Text(html, 50)
	if len([]rune(got)) != 50 {
		t.Errorf("expected 50 runes, got %d", len([]rune(got)))
	}
}

func TestText_DefaultLimit(t *testing.T) {
	html := []byte("<p>" + strings.Repeat("x", 2000) + "</p>")

	got := Text(html, 0)
	if len([]rune(got)) != DefaultTextLimit {
		t.Errorf("expected %d runes, got %d", DefaultTextLimit, len([]rune(got)))
	}
}

func TestText_EmptyInput(t *testing.T) {
	if got := Text(nil, 0); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
