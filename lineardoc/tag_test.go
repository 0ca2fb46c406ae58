package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagClassification(t *testing.T) {
	tests := []struct {
		name string
		tag  func() *Tag
		pred func(*Tag) bool
		want bool
	}{
		{"reference sup", func() *Tag {
			tg := NewTag("sup")
			tg.Attrs.Set("typeof", "mw:Extension/ref")
			return tg
		}, IsReference, true},
		{"not a reference", func() *Tag { return NewTag("sup") }, IsReference, false},
		{"math element by name", func() *Tag { return NewTag("math") }, IsMath, true},
		{"math extension", func() *Tag {
			tg := NewTag("span")
			tg.Attrs.Set("typeof", "mw:Extension/math")
			return tg
		}, IsMath, true},
		{"transclusion", func() *Tag {
			tg := NewTag("div")
			tg.Attrs.Set("typeof", "mw:Transclusion")
			return tg
		}, IsTransclusion, true},
		{"transclusion fragment", func() *Tag {
			tg := NewTag("span")
			tg.Attrs.Set("about", "#mwt1")
			return tg
		}, IsTransclusionFragment, true},
		{"external link", func() *Tag {
			tg := NewTag("a")
			tg.Attrs.Set("rel", "mw:ExtLink")
			return tg
		}, IsExternalLink, true},
		{"category link", func() *Tag {
			tg := NewTag("link")
			tg.Attrs.Set("rel", "mw:PageProp/Category")
			return tg
		}, IsCategoryLink, true},
		{"gallery", func() *Tag {
			tg := NewTag("ul")
			tg.Attrs.Set("class", "gallery mw-gallery-traditional")
			return tg
		}, IsGallery, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.tag()))
		})
	}
}

func TestIsInlineEmptyTag(t *testing.T) {
	assert.True(t, IsInlineEmptyTag("br"))
	assert.True(t, IsInlineEmptyTag("IMG"))
	assert.False(t, IsInlineEmptyTag("span"))
}

func TestIsTranslatableLink(t *testing.T) {
	a := NewTag("a")
	a.Attrs.Set("href", "./Foo")
	assert.True(t, IsTranslatableLink(a))

	noHref := NewTag("a")
	assert.False(t, IsTranslatableLink(noHref))

	fragment := NewTag("a")
	fragment.Attrs.Set("href", "./Foo")
	fragment.Attrs.Set("about", "#mwt5")
	assert.False(t, IsTranslatableLink(fragment))
}

func TestIsIgnorableBlock(t *testing.T) {
	section := NewTag("section")
	section.Attrs.Set("data-mw-section-id", "0")
	assert.True(t, IsIgnorableBlock(section))

	cat := NewTag("link")
	cat.Attrs.Set("rel", "mw:PageProp/Category")
	assert.True(t, IsIgnorableBlock(cat))

	assert.False(t, IsIgnorableBlock(NewTag("p")))
}

func TestAttrListPreservesInsertionOrder(t *testing.T) {
	al := NewAttrList()
	al.Set("typeof", "mw:Transclusion")
	al.Set("about", "#mwt1")
	al.Set("typeof", "mw:Transclusion mw:Extension/ref")

	assert.Equal(t, []string{"typeof", "about"}, al.Keys())
	v, ok := al.Get("typeof")
	assert.True(t, ok)
	assert.Equal(t, "mw:Transclusion mw:Extension/ref", v)
}
