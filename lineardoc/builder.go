package lineardoc

import "strings"

// Builder is the stateful assembler driven by the Parser: two stacks
// (open block tags, open inline-annotation tags), the in-progress chunk
// list for the current text block, a flag tracking whether that block
// remains segmentable, and a parent pointer used while assembling a
// reference/math sub-document.
type Builder struct {
	blockTags  []*Tag
	inlineTags []*Tag

	chunks             []*TextChunk
	isBlockSegmentable bool

	parent *Builder
	doc    *Doc
}

// NewBuilder creates a root builder owning a fresh Doc with no wrapper.
func NewBuilder() *Builder {
	return &Builder{doc: NewDoc(nil), isBlockSegmentable: true}
}

// Doc returns the document this builder (and, while a sub-document is
// being assembled, its descendants) is accumulating.
func (b *Builder) Doc() *Doc { return b.doc }

// Parent returns the builder that owns this one, or nil at the root.
func (b *Builder) Parent() *Builder { return b.parent }

// CreateChildBuilder returns a new Builder borrowing this one as its
// parent, with a fresh Doc wrapped by wrapperTag. Used for reference and
// math sub-documents: the child is assembled independently and, on its
// closing boundary, the completed Doc is moved into the parent's pending
// chunk as owned inline content.
func (b *Builder) CreateChildBuilder(wrapperTag *Tag) *Builder {
	return &Builder{parent: b, doc: NewDoc(wrapperTag), isBlockSegmentable: true}
}

// PushBlockTag flushes the pending text block, pushes tag onto the block
// stack, and appends an open item to the document — unless tag is a
// category link, which is instead collected into doc.Categories.
// <figure> is tagged rel="cx:Figure" as it is pushed.
func (b *Builder) PushBlockTag(tag *Tag) {
	b.FinishTextBlock()
	b.blockTags = append(b.blockTags, tag)
	if tag.Name == "figure" {
		tag.Attrs.Set("rel", "cx:Figure")
	}
	if IsCategoryLink(tag) {
		b.doc.Categories = append(b.doc.Categories, tag)
		return
	}
	b.doc.AddOpen(tag)
}

// PopBlockTag flushes the pending text block, pops the block stack
// (asserting the popped tag's name matches), and appends a close item
// unless the tag was a category link (which never produced an open item).
func (b *Builder) PopBlockTag(name string) error {
	b.FinishTextBlock()
	n := len(b.blockTags)
	if n == 0 {
		return &MalformedInputError{Reason: "close with no open block tag", Tag: name}
	}
	top := b.blockTags[n-1]
	b.blockTags = b.blockTags[:n-1]
	if top.Name != name {
		return &MalformedInputError{Reason: "mismatched block close", Tag: name}
	}
	if IsCategoryLink(top) {
		return nil
	}
	b.doc.AddClose(top)
	return nil
}

// PushInlineAnnotationTag pushes tag onto the inline-annotation stack
// only; it is materialized only once a chunk snapshots the stack.
func (b *Builder) PushInlineAnnotationTag(tag *Tag) {
	b.inlineTags = append(b.inlineTags, tag)
}

// PopInlineAnnotationTag pops the inline stack (asserting a name match).
// If the popped tag carries no attributes, that's all. Otherwise, when
// the tag is a reference, external link, or transclusion and every
// trailing pending chunk tagged with it holds only whitespace and no
// inline content, those chunks are collapsed into a single inline-content
// chunk wrapping the whitespace inside a sub-document rooted at the tag —
// so an empty <sup>, <a>, or transclusion doesn't leave dangling
// whitespace-only annotated text behind.
func (b *Builder) PopInlineAnnotationTag(name string) error {
	n := len(b.inlineTags)
	if n == 0 {
		return &MalformedInputError{Reason: "close with no open inline tag", Tag: name}
	}
	top := b.inlineTags[n-1]
	b.inlineTags = b.inlineTags[:n-1]
	if top.Name != name {
		return &MalformedInputError{Reason: "mismatched inline close", Tag: name}
	}
	if top.Attrs.Len() == 0 {
		return nil
	}
	if !(IsReference(top) || IsExternalLink(top) || IsTransclusion(top)) {
		return nil
	}

	start := len(b.chunks)
	for start > 0 {
		c := b.chunks[start-1]
		if len(c.Tags) == 0 || c.Tags[len(c.Tags)-1] != top || !c.isWhitespace() {
			break
		}
		start--
	}
	if start == len(b.chunks) {
		return nil
	}

	var ws strings.Builder
	for _, c := range b.chunks[start:] {
		ws.WriteString(c.Text)
	}
	b.chunks = b.chunks[:start]

	sub := NewDoc(top)
	if ws.Len() > 0 {
		sub.AddTextBlock(NewTextBlock([]*TextChunk{NewTextChunk(ws.String(), nil)}, true))
	}
	snap := append([]*Tag(nil), b.inlineTags...)
	b.chunks = append(b.chunks, NewInlineContentChunk(snap, sub))
	return nil
}

// AddTextChunk appends a text chunk snapshotting the current inline
// stack, and narrows the block's segmentability if canSegment is false.
func (b *Builder) AddTextChunk(text string, canSegment bool) {
	b.chunks = append(b.chunks, NewTextChunk(text, b.inlineTags))
	b.isBlockSegmentable = b.isBlockSegmentable && canSegment
}

// AddInlineContent appends a zero-text chunk carrying content (a void
// element or a just-completed sub-document) as its sole payload. A
// category-link tag is routed into doc.Categories instead, the same as
// PushBlockTag does for one encountered as a block tag.
func (b *Builder) AddInlineContent(content InlineContent, canSegment bool) {
	if tag, ok := content.(*Tag); ok && IsCategoryLink(tag) {
		b.doc.Categories = append(b.doc.Categories, tag)
		return
	}
	b.chunks = append(b.chunks, NewInlineContentChunk(b.inlineTags, content))
	b.isBlockSegmentable = b.isBlockSegmentable && canSegment
}

// FinishTextBlock closes out the pending chunk list: an all-whitespace
// run becomes a blockspace item (preserved verbatim for round-trip
// fidelity), anything else becomes a textblock item wrapping a new
// TextBlock. Pending state is cleared either way.
func (b *Builder) FinishTextBlock() {
	if len(b.chunks) == 0 {
		return
	}
	allWS := true
	for _, c := range b.chunks {
		if !c.isWhitespace() {
			allWS = false
			break
		}
	}
	if allWS {
		var sb strings.Builder
		for _, c := range b.chunks {
			sb.WriteString(c.Text)
		}
		b.doc.AddBlockspace(sb.String())
	} else {
		b.doc.AddTextBlock(NewTextBlock(b.chunks, b.isBlockSegmentable))
	}
	b.chunks = nil
	b.isBlockSegmentable = true
}
