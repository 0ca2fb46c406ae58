package lineardoc

import (
	"strconv"
	"strings"
)

// ItemKind discriminates the four shapes of item held in a Doc's flat
// item sequence.
type ItemKind int

const (
	ItemOpen ItemKind = iota
	ItemClose
	ItemTextBlock
	ItemBlockspace
)

// Item is one entry in a Doc's linearized item stream.
type Item struct {
	Kind  ItemKind
	Tag   *Tag       // ItemOpen, ItemClose
	Block *TextBlock // ItemTextBlock
	Space string     // ItemBlockspace
}

// Doc is the linear document: an ordered sequence of typed items plus an
// optional wrapper tag and the category-link tags collected out of the
// inline stream while parsing.
type Doc struct {
	WrapperTag *Tag
	Items      []Item
	Categories []*Tag
}

// NewDoc creates an empty Doc, optionally wrapped by wrapper (nil for
// none — used for the root document; sub-documents for references and
// math always carry one).
func NewDoc(wrapper *Tag) *Doc {
	return &Doc{WrapperTag: wrapper}
}

// AddItem appends an item and returns the Doc for chaining, mirroring the
// teacher's fluent AppendChild-style builder methods.
func (d *Doc) AddItem(it Item) *Doc {
	d.Items = append(d.Items, it)
	return d
}

func (d *Doc) AddOpen(t *Tag) *Doc       { return d.AddItem(Item{Kind: ItemOpen, Tag: t}) }
func (d *Doc) AddClose(t *Tag) *Doc      { return d.AddItem(Item{Kind: ItemClose, Tag: t}) }
func (d *Doc) AddTextBlock(b *TextBlock) *Doc {
	return d.AddItem(Item{Kind: ItemTextBlock, Block: b})
}
func (d *Doc) AddBlockspace(s string) *Doc {
	return d.AddItem(Item{Kind: ItemBlockspace, Space: s})
}

// GetPlainText concatenates every text block's plaintext, each followed
// by a newline, and every blockspace's literal text verbatim.
func (d *Doc) GetPlainText() string {
	var sb strings.Builder
	for _, it := range d.Items {
		switch it.Kind {
		case ItemTextBlock:
			sb.WriteString(it.Block.GetPlainText())
			sb.WriteByte('\n')
		case ItemBlockspace:
			sb.WriteString(it.Space)
		}
	}
	return sb.String()
}

// GetHTML walks the item stream and renders it back to HTML, with the
// wrapper tag (if any) surrounding everything and the collected
// categories appended after the outermost close.
func (d *Doc) GetHTML() string {
	var sb strings.Builder
	if d.WrapperTag != nil {
		sb.WriteString(getOpenTagHTML(d.WrapperTag))
	}
	for _, it := range d.Items {
		switch it.Kind {
		case ItemOpen:
			sb.WriteString(getOpenTagHTML(it.Tag))
			if it.Tag.SelfClosing {
				sb.WriteString(getCloseTagHTML(it.Tag))
			}
		case ItemClose:
			sb.WriteString(getCloseTagHTML(it.Tag))
		case ItemTextBlock:
			sb.WriteString(it.Block.GetHTML())
		case ItemBlockspace:
			sb.WriteString(it.Space)
		}
	}
	if d.WrapperTag != nil {
		sb.WriteString(getCloseTagHTML(d.WrapperTag))
	}
	for _, cat := range d.Categories {
		sb.WriteString(getOpenTagHTML(cat))
		sb.WriteString(getCloseTagHTML(cat))
	}
	return sb.String()
}

// GetRootItem returns the first meaningful tag of the sub-document, used
// when a parent TextBlock asks a nested Doc for its root item.
func (d *Doc) GetRootItem() *Tag {
	for _, it := range d.Items {
		switch it.Kind {
		case ItemOpen:
			return it.Tag
		case ItemTextBlock:
			if r := it.Block.GetRootItem(); r != nil {
				return r
			}
		}
	}
	return nil
}

// Clone deep-copies the item list. Tags are copied at the attribute-map
// level (new *Tag instances with copied AttrList), remapped consistently
// so that two items referencing the same original Tag still reference the
// same cloned Tag (preserving the identity relationships CommonTags and
// minimal-reopen rendering depend on). TextChunks are value-copied;
// sub-documents recurse.
func (d *Doc) Clone() *Doc {
	remap := make(map[*Tag]*Tag)
	return d.cloneWith(remap)
}

func (d *Doc) cloneWith(remap map[*Tag]*Tag) *Doc {
	cloneTag := func(t *Tag) *Tag {
		if t == nil {
			return nil
		}
		if c, ok := remap[t]; ok {
			return c
		}
		nt := &Tag{Name: t.Name, SelfClosing: t.SelfClosing, Attrs: NewAttrList()}
		for _, k := range t.Attrs.Keys() {
			v, _ := t.Attrs.Get(k)
			nt.Attrs.Set(k, v)
		}
		remap[t] = nt
		return nt
	}

	nd := &Doc{WrapperTag: cloneTag(d.WrapperTag)}
	for _, cat := range d.Categories {
		nd.Categories = append(nd.Categories, cloneTag(cat))
	}

	for _, it := range d.Items {
		switch it.Kind {
		case ItemOpen:
			nd.Items = append(nd.Items, Item{Kind: ItemOpen, Tag: cloneTag(it.Tag)})
		case ItemClose:
			nd.Items = append(nd.Items, Item{Kind: ItemClose, Tag: cloneTag(it.Tag)})
		case ItemBlockspace:
			nd.Items = append(nd.Items, Item{Kind: ItemBlockspace, Space: it.Space})
		case ItemTextBlock:
			nb := &TextBlock{CanSegment: it.Block.CanSegment}
			for _, c := range it.Block.Chunks {
				tags := make([]*Tag, len(c.Tags))
				for i, t := range c.Tags {
					tags[i] = cloneTag(t)
				}
				nc := &TextChunk{Text: c.Text, Tags: tags}
				switch v := c.Content.(type) {
				case *Tag:
					nc.Content = cloneTag(v)
				case *Doc:
					nc.Content = v.cloneWith(remap)
				}
				nb.Chunks = append(nb.Chunks, nc)
			}
			nd.Items = append(nd.Items, Item{Kind: ItemTextBlock, Block: nb})
		}
	}
	return nd
}

// Segment returns a new Doc with every segmentable text block replaced by
// the result of TextBlock.Segment, and every other text block left as-is
// except for data-linkid assignment via setLinkIDsInPlace. All ids are
// drawn from a single counter shared across the whole Doc (spec.md §4.4).
func (d *Doc) Segment(boundaryFn BoundaryFunc) (*Doc, error) {
	nd := d.Clone()
	gen := &idGenerator{}
	for i, it := range nd.Items {
		if it.Kind != ItemTextBlock {
			continue
		}
		if it.Block.CanSegment {
			nb, err := it.Block.Segment(boundaryFn, gen)
			if err != nil {
				return nil, err
			}
			nd.Items[i].Block = nb
		} else {
			setLinkIDsInPlace(it.Block.Chunks, gen)
		}
	}
	return nd, nil
}

// WrapSections re-numbers every open item with a sequential integer id
// (including the wrapper tag) and replaces each top-level
// <section data-mw-section-id="N"> pair with the cx:Section rewriting of
// spec.md §4.4.1. Nested section markers and sub-documents are left
// untouched.
func (d *Doc) WrapSections() *Doc {
	nd := d.Clone()

	idCounter := 0
	sectionCounter := 0
	depth := 0
	replaced := make(map[*Tag]*Tag)

	assignID := func(t *Tag) {
		if !t.Attrs.Has("id") {
			t.Attrs.Set("id", strconv.Itoa(idCounter))
			idCounter++
		}
	}

	if nd.WrapperTag != nil {
		assignID(nd.WrapperTag)
	}

	for i, it := range nd.Items {
		switch it.Kind {
		case ItemOpen:
			if it.Tag.Name == "section" && it.Tag.Attrs.Has("data-mw-section-id") && depth == 0 {
				nt := NewTag("section")
				nt.Attrs.Set("rel", "cx:Section")
				nt.Attrs.Set("id", "cxSourceSection"+strconv.Itoa(sectionCounter))
				nt.Attrs.Set("data-mw-section-number", strconv.Itoa(sectionCounter))
				sectionCounter++
				replaced[it.Tag] = nt
				nd.Items[i].Tag = nt
			} else {
				assignID(it.Tag)
			}
			depth++
		case ItemClose:
			depth--
			if nt, ok := replaced[it.Tag]; ok {
				nd.Items[i].Tag = nt
			}
		}
	}
	return nd
}
