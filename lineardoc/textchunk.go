package lineardoc

// InlineContent is either a Tag (an empty inline element such as <br/> or
// an anchor with no text body) or a *Doc (a reference/math sub-document).
// A TextChunk carries at most one of these, never both a non-empty text
// and an InlineContent.
type InlineContent interface {
	inlineContentMarker()
}

func (t *Tag) inlineContentMarker() {}
func (d *Doc) inlineContentMarker() {}

// TextChunk is a run of text sharing an identical ordered stack of
// currently-open inline-annotation tags. The Tags slice is a shallow copy
// of the Builder's live stack taken at construction time ("annotation
// stack snapshot"): later mutation of any *Tag it holds (attaching
// data-linkid, data-segmentid, data-cx) is visible through every chunk
// that references the same Tag, but appending/removing tags from the
// live stack afterwards never changes this chunk's Tags slice.
type TextChunk struct {
	Text    string
	Tags    []*Tag
	Content InlineContent // optional; Text is "" when reference/void content is present
}

// NewTextChunk stores a shallow copy of tags (so later stack mutation
// doesn't retroactively change this chunk) and the given text verbatim.
func NewTextChunk(text string, tags []*Tag) *TextChunk {
	snap := make([]*Tag, len(tags))
	copy(snap, tags)
	return &TextChunk{Text: text, Tags: snap}
}

// NewInlineContentChunk builds a zero-text chunk carrying a void element
// or sub-document as its sole content.
func NewInlineContentChunk(tags []*Tag, content InlineContent) *TextChunk {
	c := NewTextChunk("", tags)
	c.Content = content
	return c
}

// clone makes a value copy of the chunk; Tags is re-sliced (not deep
// copied — the *Tag pointers are shared, per the sharing invariant above).
func (c *TextChunk) clone() *TextChunk {
	tags := make([]*Tag, len(c.Tags))
	copy(tags, c.Tags)
	cl := &TextChunk{Text: c.Text, Tags: tags, Content: c.Content}
	return cl
}

// withTags returns a shallow copy of c with its Tags slice replaced.
func (c *TextChunk) withTags(tags []*Tag) *TextChunk {
	cl := c.clone()
	cl.Tags = tags
	return cl
}

// isWhitespace reports whether the chunk's text is empty or all
// whitespace and it carries no inline content.
func (c *TextChunk) isWhitespace() bool {
	if c.Content != nil {
		return false
	}
	return isAllSpace(c.Text)
}

func isAllSpace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			return false
		}
	}
	return true
}
