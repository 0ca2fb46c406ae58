package lineardoc

import "strings"

// Offset describes one chunk's position within a TextBlock's plaintext.
type Offset struct {
	Start  int
	Length int
	Tags   []*Tag
}

// TextBlock is an ordered sequence of text chunks representing one
// paragraph-scale run of inline content.
type TextBlock struct {
	Chunks     []*TextChunk
	CanSegment bool
}

// NewTextBlock builds a TextBlock from chunks assembled by the Builder.
func NewTextBlock(chunks []*TextChunk, canSegment bool) *TextBlock {
	return &TextBlock{Chunks: append([]*TextChunk(nil), chunks...), CanSegment: canSegment}
}

// Offsets recomputes the {start,length,tags} triples described in
// spec.md §3: offsets[i].start is the running sum of prior chunk
// lengths, offsets[i].length is len(chunk.Text), and the concatenation of
// chunk texts equals the block's plaintext.
func (b *TextBlock) Offsets() []Offset {
	offs := make([]Offset, len(b.Chunks))
	pos := 0
	for i, c := range b.Chunks {
		offs[i] = Offset{Start: pos, Length: len(c.Text), Tags: c.Tags}
		pos += len(c.Text)
	}
	return offs
}

// CommonTags returns the longest common prefix of every chunk's Tags,
// compared by Tag pointer identity (not value) as spec.md §4.3 and the
// design note in §9 require.
func (b *TextBlock) CommonTags() []*Tag {
	if len(b.Chunks) == 0 {
		return nil
	}
	common := b.Chunks[0].Tags
	for _, c := range b.Chunks[1:] {
		common = commonPrefix(common, c.Tags)
		if len(common) == 0 {
			break
		}
	}
	out := make([]*Tag, len(common))
	copy(out, common)
	return out
}

func commonPrefix(a, b []*Tag) []*Tag {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// GetTagOffsets returns the offsets of chunks whose tag stack is strictly
// deeper than CommonTags() and whose text is non-empty — the segmentable
// regions the segmenter needs to know the extent of.
func (b *TextBlock) GetTagOffsets() []Offset {
	common := b.CommonTags()
	all := b.Offsets()
	var out []Offset
	for i, o := range all {
		if len(b.Chunks[i].Tags) > len(common) && b.Chunks[i].Text != "" {
			out = append(out, o)
		}
	}
	return out
}

// GetPlainText concatenates every chunk's text.
func (b *TextBlock) GetPlainText() string {
	var sb strings.Builder
	for _, c := range b.Chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// GetRootItem returns the first tag (or an inline sub-document's own root
// item) of the first chunk whose text is not whitespace-only or whose tag
// stack is non-empty. Returns nil when the block is plain text with no
// annotations at all.
func (b *TextBlock) GetRootItem() *Tag {
	for _, c := range b.Chunks {
		if strings.TrimSpace(c.Text) == "" && len(c.Tags) == 0 {
			continue
		}
		if len(c.Tags) > 0 {
			return c.Tags[0]
		}
		if d, ok := c.Content.(*Doc); ok {
			return d.GetRootItem()
		}
		if t, ok := c.Content.(*Tag); ok {
			return t
		}
		return nil
	}
	return nil
}

// GetHTML renders the block using the minimal-reopen algorithm of
// spec.md §4.3: for each chunk, close the suffix of the previous open
// stack not shared (by identity) with this chunk, open this chunk's own
// suffix, emit escaped text and any inline content, then close whatever
// remains open at the end.
func (b *TextBlock) GetHTML() string {
	var sb strings.Builder
	var open []*Tag
	for _, c := range b.Chunks {
		n := len(commonPrefix(open, c.Tags))
		for i := len(open) - 1; i >= n; i-- {
			sb.WriteString(getCloseTagHTML(open[i]))
		}
		for i := n; i < len(c.Tags); i++ {
			sb.WriteString(getOpenTagHTML(c.Tags[i]))
		}
		open = c.Tags
		sb.WriteString(esc(c.Text))
		writeInlineContent(&sb, c.Content)
	}
	for i := len(open) - 1; i >= 0; i-- {
		sb.WriteString(getCloseTagHTML(open[i]))
	}
	return sb.String()
}

func writeInlineContent(sb *strings.Builder, content InlineContent) {
	switch v := content.(type) {
	case nil:
	case *Tag:
		sb.WriteString(getOpenTagHTML(v))
		sb.WriteString(getCloseTagHTML(v))
	case *Doc:
		sb.WriteString(v.GetHTML())
	}
}

// addCommonTag appends tag to the end of every chunk's Tags list, skipping
// each chunk whose Tags already hold tag (compared by identity) — used when
// flushing a segment to wrap its pieces with an outer cx-segment span
// without double-wrapping chunks that already carry it.
func addCommonTag(chunks []*TextChunk, tag *Tag) {
	for i, c := range chunks {
		already := false
		for _, t := range c.Tags {
			if t == tag {
				already = true
				break
			}
		}
		if already {
			continue
		}
		tags := make([]*Tag, len(c.Tags)+1)
		copy(tags, c.Tags)
		tags[len(c.Tags)] = tag
		chunks[i] = c.withTags(tags)
	}
}
