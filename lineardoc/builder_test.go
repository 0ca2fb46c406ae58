package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_PushPopBlockTag(t *testing.T) {
	b := NewBuilder()
	p := NewTag("p")
	b.PushBlockTag(p)
	b.AddTextChunk("hello", true)
	require.NoError(t, b.PopBlockTag("p"))
	b.FinishTextBlock()

	doc := b.Doc()
	require.Len(t, doc.Items, 3)
	assert.Equal(t, ItemOpen, doc.Items[0].Kind)
	assert.Equal(t, ItemTextBlock, doc.Items[1].Kind)
	assert.Equal(t, ItemClose, doc.Items[2].Kind)
}

func TestBuilder_PopBlockTag_MismatchedClose(t *testing.T) {
	b := NewBuilder()
	b.PushBlockTag(NewTag("p"))
	err := b.PopBlockTag("div")
	require.Error(t, err)
	var malformed *MalformedInputError
	assert.ErrorAs(t, err, &malformed)
}

func TestBuilder_FigureTaggedAsFigure(t *testing.T) {
	b := NewBuilder()
	figure := NewTag("figure")
	b.PushBlockTag(figure)
	rel, ok := figure.Attrs.Get("rel")
	require.True(t, ok)
	assert.Equal(t, "cx:Figure", rel)
}

func TestBuilder_CategoryLinkGoesToCategories(t *testing.T) {
	b := NewBuilder()
	cat := NewTag("link")
	cat.Attrs.Set("rel", "mw:PageProp/Category")
	b.PushBlockTag(cat)

	require.NoError(t, b.PopBlockTag("link"))
	assert.Empty(t, b.Doc().Items)
	require.Len(t, b.Doc().Categories, 1)
}

func TestBuilder_FinishTextBlock_BlockspaceVsTextBlock(t *testing.T) {
	b := NewBuilder()
	b.AddTextChunk("   \n", true)
	b.FinishTextBlock()
	require.Len(t, b.Doc().Items, 1)
	assert.Equal(t, ItemBlockspace, b.Doc().Items[0].Kind)

	b2 := NewBuilder()
	b2.AddTextChunk("hi", true)
	b2.FinishTextBlock()
	require.Len(t, b2.Doc().Items, 1)
	assert.Equal(t, ItemTextBlock, b2.Doc().Items[0].Kind)
}

func TestBuilder_PopInlineAnnotationTag_CollapsesTrailingWhitespace(t *testing.T) {
	b := NewBuilder()
	ref := NewTag("sup")
	ref.Attrs.Set("typeof", "mw:Extension/ref")

	b.PushInlineAnnotationTag(ref)
	b.AddTextChunk("  ", true)
	require.NoError(t, b.PopInlineAnnotationTag("sup"))

	require.Len(t, b.chunks, 1)
	assert.Equal(t, "", b.chunks[0].Text)
	sub, ok := b.chunks[0].Content.(*Doc)
	require.True(t, ok)
	assert.Same(t, ref, sub.WrapperTag)
}

func TestBuilder_PopInlineAnnotationTag_NoAttrsIsNoop(t *testing.T) {
	b := NewBuilder()
	span := NewTag("span")
	b.PushInlineAnnotationTag(span)
	b.AddTextChunk("x", true)
	require.NoError(t, b.PopInlineAnnotationTag("span"))

	require.Len(t, b.chunks, 1)
	assert.Equal(t, "x", b.chunks[0].Text)
}

func TestBuilder_CreateChildBuilder_WiresParent(t *testing.T) {
	b := NewBuilder()
	ref := NewTag("sup")
	ref.Attrs.Set("typeof", "mw:Extension/ref")

	child := b.CreateChildBuilder(ref)
	assert.Same(t, b, child.Parent())
	assert.Same(t, ref, child.Doc().WrapperTag)
}

func TestBuilder_AddInlineContent_CategoryLinkRouted(t *testing.T) {
	b := NewBuilder()
	cat := NewTag("link")
	cat.Attrs.Set("rel", "mw:PageProp/Category")
	b.AddInlineContent(cat, true)

	assert.Empty(t, b.chunks)
	require.Len(t, b.Doc().Categories, 1)
}
