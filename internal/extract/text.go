package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTextLimit caps the readable-text snippet taken from a detail page.
const DefaultTextLimit = 600

// Text extracts the readable text of an HTML document: script and style
// content is dropped, the remaining text nodes are joined with single
// spaces, and the result is truncated to limit runes (DefaultTextLimit when
// limit <= 0). Unparseable input yields an empty string.
func Text(html []byte, limit int) string {
	if limit <= 0 {
		limit = DefaultTextLimit
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	fields := strings.Fields(doc.Text())
	joined := strings.Join(fields, " ")

	runes := []rune(joined)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return joined
}
