package lineardoc

import "strings"

// esc escapes the three characters that must never appear literally in
// HTML text content, using numeric character references as spec.md §4.1
// requires (not named entities, so the output never depends on a DTD).
func esc(text string) string {
	if !strings.ContainsAny(text, "&<>") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	for _, r := range text {
		switch r {
		case '&':
			b.WriteString("&#38;")
		case '<':
			b.WriteString("&#60;")
		case '>':
			b.WriteString("&#62;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escAttr escapes an attribute value for double-quoted serialization.
func escAttr(value string) string {
	if !strings.ContainsAny(value, "&\"'<>") {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 16)
	for _, r := range value {
		switch r {
		case '&':
			b.WriteString("&#38;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		case '<':
			b.WriteString("&#60;")
		case '>':
			b.WriteString("&#62;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// getOpenTagHTML renders tag's opening HTML, with attributes in insertion
// order and double-quoted, numeric-character-reference-escaped values.
func getOpenTagHTML(t *Tag) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, k := range t.Attrs.Keys() {
		v, _ := t.Attrs.Get(k)
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escAttr(v))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

// getCloseTagHTML renders tag's closing HTML, or the empty string for a
// self-closing (void) tag.
func getCloseTagHTML(t *Tag) string {
	if t.SelfClosing {
		return ""
	}
	return "</" + t.Name + ">"
}
