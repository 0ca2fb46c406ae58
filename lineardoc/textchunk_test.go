package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTextChunk_SnapshotsTags(t *testing.T) {
	live := []*Tag{NewTag("i")}
	c := NewTextChunk("hello", live)

	live = append(live, NewTag("b"))

	assert.Len(t, c.Tags, 1, "chunk must not see tags appended to the live stack afterwards")
}

func TestTextChunk_MutationVisibleThroughSharedPointer(t *testing.T) {
	tg := NewTag("a")
	tg.Attrs.Set("href", "./Foo")

	c1 := NewTextChunk("one", []*Tag{tg})
	c2 := NewTextChunk("two", []*Tag{tg})

	tg.Attrs.Set("data-linkid", "5")

	v1, ok1 := c1.Tags[0].Attrs.Get("data-linkid")
	v2, ok2 := c2.Tags[0].Attrs.Get("data-linkid")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, "5", v1)
	assert.Equal(t, "5", v2)
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, NewTextChunk("  \n\t", nil).isWhitespace())
	assert.False(t, NewTextChunk("  x", nil).isWhitespace())

	withContent := NewInlineContentChunk(nil, NewTag("br"))
	assert.False(t, withContent.isWhitespace())
}

func TestWithTags(t *testing.T) {
	c := NewTextChunk("hi", []*Tag{NewTag("i")})
	replacement := []*Tag{NewTag("b")}
	c2 := c.withTags(replacement)

	assert.Equal(t, "hi", c2.Text)
	assert.Same(t, replacement[0], c2.Tags[0])
	assert.Equal(t, "i", c.Tags[0].Name, "original chunk must be unaffected")
}
