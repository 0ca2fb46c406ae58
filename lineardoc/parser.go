package lineardoc

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// blockTags is the closed set of tags that are always block-level,
// spec.md §4.7.1. A tag is an inline-annotation tag iff its name is not
// in this set, subject to the three context-dependent exceptions in
// isInlineAnnotation.
var blockTags = map[string]bool{
	"html": true, "head": true, "body": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "td": true, "th": true, "caption": true, "colgroup": true, "col": true,
	"li": true, "ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"article": true, "section": true, "figure": true, "figcaption": true,
	"p": true, "div": true, "pre": true, "blockquote": true,
	"br": true, "img": true, "hr": true, "meta": true, "link": true,
	"input": true, "wbr": true,
	"audio": true, "video": true, "style": true, "script": true, "title": true,
	"wiki-chart": true,
}

// isInlineAnnotation decides whether tag, opened while the contextualizer
// reports ownCtx as its own (just-pushed) context, should be routed as an
// inline-annotation tag rather than a block tag. ownCtx is the context
// produced for tag itself by Contextualizer.OnOpen, which is what each of
// the three exceptions in spec.md §4.7.1 actually keys on.
func isInlineAnnotation(tag *Tag, ownCtx Context) bool {
	if blockTags[tag.Name] {
		switch {
		case (tag.Name == "audio" || tag.Name == "video") && ownCtx == CtxMediaInline:
			return true
		case tag.Name == "style" && IsTransclusion(tag):
			return true
		default:
			return false
		}
	}
	if tag.Name == "span" && ownCtx == CtxMedia {
		return false
	}
	return true
}

type routeKind int

const (
	routeDropped routeKind = iota
	routeChildBuilder
	routeInlineEmpty
	routeInlineAnnotation
	routeBlockTag
)

type openRecord struct {
	tag       *Tag
	kind      routeKind
	synthetic bool
}

// Parser is the streaming SAX-style driver: it consumes an
// golang.org/x/net/html.Tokenizer token stream, consults a Contextualizer
// to classify each tag, and routes open/close/text events into a Builder,
// switching between parent and child Builders at reference/math
// sub-document boundaries.
type Parser struct {
	// IsolateSegments wraps every already-segmented <... data-segmentid>
	// element in a synthetic <div class="cx-segment-block"> block tag
	// while reprocessing previously segmented HTML.
	IsolateSegments bool

	ctx     *Contextualizer
	builder *Builder
	root    *Builder
	stack   []openRecord
}

// NewParser creates a Parser that will classify removable regions using
// ctx (typically built by NewMWContextualizer).
func NewParser(ctx *Contextualizer) *Parser {
	return &Parser{ctx: ctx}
}

// Feed tokenizes and parses src in its entirety and returns the resulting
// Doc. Feed is not re-entrant and must not be called more than once per
// Parser instance.
func (p *Parser) Feed(src string) (*Doc, error) {
	// Fresh so that concurrent requests, each building their own Parser
	// around the same shared *Contextualizer, never mutate one another's
	// open-tag stack — only the immutable isRemovable rule is shared.
	p.ctx = p.ctx.Fresh()
	p.root = NewBuilder()
	p.builder = p.root

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			p.builder.FinishTextBlock()
			if len(p.stack) != 0 {
				return nil, &MalformedInputError{Reason: "unclosed tags at end of input"}
			}
			return p.root.Doc(), nil
		case html.TextToken:
			if err := p.handleText(z.Token().Data); err != nil {
				return nil, err
			}
		case html.CommentToken, html.DoctypeToken:
			// Not part of the linear document's item model; ignored.
		case html.StartTagToken, html.SelfClosingTagToken:
			tag := tagFromToken(z.Token())
			// Void elements never carry a matching end tag, whether or
			// not the source used the XHTML "/>" spelling: the
			// tokenizer only reports SelfClosingTagToken for the latter,
			// so IsInlineEmptyTag is consulted too, or <img src="x">
			// (no slash) would leave an unclosed record on the stack
			// forever.
			tag.SelfClosing = tt == html.SelfClosingTagToken || IsInlineEmptyTag(tag.Name)
			if err := p.handleOpen(tag); err != nil {
				return nil, err
			}
			if tag.SelfClosing {
				if err := p.handleClose(tag.Name); err != nil {
					return nil, err
				}
			}
		case html.EndTagToken:
			if err := p.handleClose(z.Token().Data); err != nil {
				return nil, err
			}
		}
	}
}

func tagFromToken(tok html.Token) *Tag {
	t := NewTag(tok.Data)
	for _, a := range tok.Attr {
		t.Attrs.Set(a.Key, a.Val)
	}
	return t
}

func (p *Parser) handleOpen(tag *Tag) error {
	ctx := p.ctx.OnOpen(tag)
	rec := openRecord{tag: tag}

	if ctx == CtxRemovable {
		rec.kind = routeDropped
		p.stack = append(p.stack, rec)
		return nil
	}

	if p.IsolateSegments && IsSegment(tag) {
		div := NewTag("div")
		div.Attrs.Set("class", "cx-segment-block")
		p.builder.PushBlockTag(div)
		rec.synthetic = true
	}

	switch {
	case IsReference(tag) || IsMath(tag):
		rec.kind = routeChildBuilder
		p.builder = p.builder.CreateChildBuilder(tag)
	case IsInlineEmptyTag(tag.Name):
		rec.kind = routeInlineEmpty
		p.builder.AddInlineContent(tag, p.ctx.CanSegment())
	case isInlineAnnotation(tag, ctx):
		rec.kind = routeInlineAnnotation
		p.builder.PushInlineAnnotationTag(tag)
	default:
		rec.kind = routeBlockTag
		p.builder.PushBlockTag(tag)
	}

	p.stack = append(p.stack, rec)
	return nil
}

func (p *Parser) handleClose(name string) error {
	n := len(p.stack)
	if n == 0 {
		return &MalformedInputError{Reason: "close tag with no matching open", Tag: name}
	}
	rec := p.stack[n-1]
	p.stack = p.stack[:n-1]
	if rec.tag.Name != name {
		return &MalformedInputError{Reason: "mismatched close tag", Tag: name}
	}
	p.ctx.OnClose()

	switch rec.kind {
	case routeDropped, routeInlineEmpty:
		return nil
	case routeInlineAnnotation:
		if err := p.builder.PopInlineAnnotationTag(name); err != nil {
			return err
		}
		if rec.synthetic {
			return p.builder.PopBlockTag("div")
		}
		return nil
	case routeChildBuilder:
		if name != "span" && name != "sup" && name != "math" {
			return &MalformedInputError{Reason: "unexpected sub-document boundary", Tag: name}
		}
		child := p.builder
		child.FinishTextBlock()
		parent := child.Parent()
		if parent == nil {
			return &InternalError{Reason: "sub-document boundary close with no parent builder"}
		}
		parent.AddInlineContent(child.Doc(), p.ctx.CanSegment())
		p.builder = parent
		return nil
	case routeBlockTag:
		if name == "p" && p.ctx.CanSegment() {
			p.builder.AddTextChunk("", true)
		}
		return p.builder.PopBlockTag(name)
	default:
		return &InternalError{Reason: "unrecognized route kind"}
	}
}

func (p *Parser) handleText(text string) error {
	if p.ctx.Top() == CtxRemovable {
		return nil
	}
	p.builder.AddTextChunk(text, p.ctx.CanSegment())
	return nil
}
