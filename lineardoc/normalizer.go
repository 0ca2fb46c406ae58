package lineardoc

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Normalize re-emits src deterministically: every tag is rendered through
// getOpenTagHTML/getCloseTagHTML (stable attribute quoting, numeric
// character references) and every text run through esc. It shares no
// state with Parser — it is a minimal second SAX pass used to get a
// byte-stable baseline for comparison in round-trip tests (spec.md §4.8).
func Normalize(src string) (string, error) {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && err != io.EOF {
				return "", err
			}
			return sb.String(), nil
		case html.TextToken:
			sb.WriteString(esc(z.Token().Data))
		case html.StartTagToken, html.SelfClosingTagToken:
			tag := tagFromToken(z.Token())
			tag.SelfClosing = tt == html.SelfClosingTagToken || IsInlineEmptyTag(tag.Name)
			sb.WriteString(getOpenTagHTML(tag))
			if tag.SelfClosing {
				sb.WriteString(getCloseTagHTML(tag))
			}
		case html.EndTagToken:
			sb.WriteString(getCloseTagHTML(&Tag{Name: z.Token().Data}))
		case html.CommentToken, html.DoctypeToken:
			// not part of the normalized output
		}
	}
}
