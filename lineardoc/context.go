package lineardoc

// Context symbolically classifies the tag stack position a parser is
// currently at, mirroring the parser's own open-tag stack one entry per
// entry (spec.md §3 "Context stack").
type Context int

const (
	CtxNone Context = iota
	CtxRemovable
	CtxMedia
	CtxMediaInline
	CtxVerbatim
	CtxSection
	CtxContentBranch
)

// Contextualizer tracks a context stack parallel to a parser's open-tag
// stack. IsRemovable is pluggable (a strategy function) so that the MW
// contextualizer's class/RDFa/template rules can be injected without
// requiring virtual dispatch through embedding.
type Contextualizer struct {
	stack      []Context
	tagStack   []*Tag
	isRemovable func(*Tag) bool
}

// NewContextualizer builds a Contextualizer whose removable determination
// is decided by isRemovable. A nil isRemovable means nothing is ever
// removable (the base behavior; the MW variant supplies a real one via
// NewMWContextualizer).
func NewContextualizer(isRemovable func(*Tag) bool) *Contextualizer {
	if isRemovable == nil {
		isRemovable = func(*Tag) bool { return false }
	}
	return &Contextualizer{isRemovable: isRemovable}
}

// Fresh returns a new Contextualizer sharing c's isRemovable rule (the
// immutable, once-compiled removable-region config, safe to share across
// concurrent parses) but with its own empty stack. A Parser calls this
// once per Feed so that a single *Contextualizer handed to many requests
// never has its stack mutated by more than one parse at a time.
func (c *Contextualizer) Fresh() *Contextualizer {
	return &Contextualizer{isRemovable: c.isRemovable}
}

// IsRemovable reports whether tag matches the removable-section rules,
// independent of the current ancestor context.
func (c *Contextualizer) IsRemovable(tag *Tag) bool {
	return c.isRemovable(tag)
}

// Top returns the context at the top of the stack, or CtxNone if empty.
func (c *Contextualizer) Top() Context {
	if len(c.stack) == 0 {
		return CtxNone
	}
	return c.stack[len(c.stack)-1]
}

// OnOpen computes tag's child context from the current top-of-stack
// context (and, for the "style inside transclusion" rule, the style tag's
// own typeof) and pushes it. The resulting context is what every
// descendant of tag will see until OnClose pops it. A parent already in
// CtxRemovable is sticky; otherwise a tag matching IsRemovable starts a
// fresh removable subtree.
func (c *Contextualizer) OnOpen(tag *Tag) Context {
	parent := c.Top()

	var next Context
	switch {
	case parent == CtxRemovable:
		next = CtxRemovable
	case c.isRemovable(tag):
		next = CtxRemovable
	case tag.Name == "figure":
		next = CtxMedia
	case tag.Name == "figcaption" && parent == CtxMedia:
		next = CtxNone
	case (tag.Name == "audio" || tag.Name == "video") && parent == CtxMedia:
		next = CtxMediaInline
	case tag.Name == "style" && IsTransclusion(tag):
		next = CtxVerbatim
	case tag.Name == "section":
		next = CtxSection
	case parent == CtxSection && !isHeadingTag(tag.Name):
		next = CtxNone
	default:
		next = parent
	}

	c.stack = append(c.stack, next)
	c.tagStack = append(c.tagStack, tag)
	return next
}

// isHeadingTag reports whether name is h1-h6: the one tag family that
// keeps the section context unchanged rather than resetting to neutral
// when opened directly under a section (spec.md §4.5's child-context
// table).
func isHeadingTag(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	default:
		return false
	}
}

// OnClose pops the context pushed by the matching OnOpen.
func (c *Contextualizer) OnClose() {
	if n := len(c.stack); n > 0 {
		c.stack = c.stack[:n-1]
	}
	if n := len(c.tagStack); n > 0 {
		c.tagStack = c.tagStack[:n-1]
	}
}

// CanSegment reports whether the current position is eligible for
// sentence segmentation: the top of stack is neutral and no ancestor is
// removable, verbatim, or media.
func (c *Contextualizer) CanSegment() bool {
	if c.Top() != CtxNone {
		return false
	}
	for _, ctx := range c.stack {
		if ctx == CtxRemovable || ctx == CtxVerbatim || ctx == CtxMedia {
			return false
		}
	}
	return true
}
