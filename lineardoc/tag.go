package lineardoc

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// Tag is a single HTML element occurrence: name, ordered attributes, and
// whether it is a self-closing (void) element. Tags are allocated once by
// the Parser and shared by reference between the live open-element stacks
// and every TextChunk snapshot that captured them while they were open, so
// that later attribute mutations (data-linkid, data-segmentid, data-cx)
// are visible everywhere the Tag is held.
type Tag struct {
	Name        string
	Attrs       *AttrList
	SelfClosing bool
}

// NewTag creates a Tag with an empty attribute list.
func NewTag(name string) *Tag {
	return &Tag{Name: strings.ToLower(name), Attrs: NewAttrList()}
}

// AttrList is an ordered string->string mapping. Insertion order is
// preserved for stable serialization, and later writes to an existing key
// update the value in place without moving it.
type AttrList struct {
	keys   []string
	values map[string]string
}

func NewAttrList() *AttrList {
	return &AttrList{values: make(map[string]string)}
}

func (a *AttrList) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

func (a *AttrList) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Set inserts key=value, or updates it in place if key is already present.
func (a *AttrList) Set(key, value string) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *AttrList) Keys() []string {
	return a.keys
}

func (a *AttrList) Len() int {
	return len(a.keys)
}

// Equal reports whether a and other hold the same key/value pairs,
// ignoring insertion order — the "modulo attribute insertion order"
// equivalence spec.md §8 invariant 6 asks round-tripped documents to
// satisfy. go-cmp calls this method automatically wherever an *AttrList
// appears in a comparison.
func (a *AttrList) Equal(other *AttrList) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.keys) != len(other.keys) {
		return false
	}
	for k, v := range a.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// field splits an attribute value on ASCII whitespace, the way HTML class
// and typeof and rel tokens are split.
func field(v string) []string {
	return strings.Fields(v)
}

func hasToken(v string, want ...string) bool {
	for _, tok := range field(v) {
		for _, w := range want {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// addClassToken appends token to t's class attribute, preserving any
// classes already present, unless token is already one of them.
func addClassToken(t *Tag, token string) {
	existing, _ := t.Attrs.Get("class")
	if hasToken(existing, token) {
		return
	}
	if existing == "" {
		t.Attrs.Set("class", token)
		return
	}
	t.Attrs.Set("class", existing+" "+token)
}

// IsReference reports whether tag is a MediaWiki reference marker
// (<sup typeof="mw:Extension/ref">, mw:Cite/Footnote, or mw:Reference).
func IsReference(t *Tag) bool {
	typeOf, _ := t.Attrs.Get("typeof")
	return hasToken(typeOf, "mw:Extension/ref", "mw:Cite/Footnote", "mw:Reference")
}

// IsMath reports whether tag renders a math extension body.
func IsMath(t *Tag) bool {
	typeOf, _ := t.Attrs.Get("typeof")
	return hasToken(typeOf, "mw:Extension/math") || t.Name == "math"
}

// IsTransclusion reports whether tag is the root of a template expansion.
func IsTransclusion(t *Tag) bool {
	typeOf, _ := t.Attrs.Get("typeof")
	return hasToken(typeOf, "mw:Transclusion")
}

// IsTransclusionFragment reports whether tag is a secondary fragment of a
// transclusion identified by an "about" pointer (RDFa about=#mwt...).
func IsTransclusionFragment(t *Tag) bool {
	about, ok := t.Attrs.Get("about")
	return ok && strings.HasPrefix(about, "#mwt")
}

// IsExternalLink reports whether tag is an external (non-wiki) hyperlink.
func IsExternalLink(t *Tag) bool {
	rel, _ := t.Attrs.Get("rel")
	return hasToken(rel, "mw:ExtLink")
}

// IsSegment reports whether tag already carries a segment id, as produced
// by an earlier pass over the same document.
func IsSegment(t *Tag) bool {
	return t.Attrs.Has("data-segmentid")
}

// IsGallery reports whether tag is a MediaWiki image gallery container.
func IsGallery(t *Tag) bool {
	class, _ := t.Attrs.Get("class")
	return hasToken(class, "gallery")
}

// inlineEmptyTags is the closed HTML void-element set, keyed by atom so
// the classification cost is a single integer compare per lookup.
var inlineEmptyTags = map[atom.Atom]bool{
	atom.Br:     true,
	atom.Img:    true,
	atom.Hr:     true,
	atom.Meta:   true,
	atom.Link:   true,
	atom.Input:  true,
	atom.Wbr:    true,
	atom.Area:   true,
	atom.Base:   true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Param:  true,
	atom.Track:  true,
	atom.Source: true,
}

// IsInlineEmptyTag reports whether name is one of the void HTML elements
// that never carry a close tag or text content of their own.
func IsInlineEmptyTag(name string) bool {
	return inlineEmptyTags[atom.Lookup([]byte(strings.ToLower(name)))]
}

// IsTranslatableLink reports whether tag is a hyperlink eligible for
// data-linkid assignment: an anchor carrying a non-empty href, excluding
// transclusion fragments. This is the explicit resolution of spec.md's
// open question (ii) about the scope of "translatable link" tags.
func IsTranslatableLink(t *Tag) bool {
	if t.Name != "a" {
		return false
	}
	href, ok := t.Attrs.Get("href")
	if !ok || href == "" {
		return false
	}
	return !IsTransclusionFragment(t)
}

// IsCategoryLink reports whether tag is a category-membership link, which
// is collected into Doc.Categories rather than left inline.
func IsCategoryLink(t *Tag) bool {
	rel, _ := t.Attrs.Get("rel")
	return hasToken(rel, "mw:PageProp/Category")
}

// IsIgnorableBlock reports whether tag is a structural marker that should
// be passed through the item stream without becoming a visible open/close
// pair of its own: a top-level <section data-mw-section-id> (handled by
// WrapSections instead) or a category link (collected separately).
func IsIgnorableBlock(t *Tag) bool {
	if t.Name == "section" && t.Attrs.Has("data-mw-section-id") {
		return true
	}
	return IsCategoryLink(t)
}
