package lineardoc

import "sort"

// Range is a half-open [Start, Start+Length) span in some plaintext.
type Range struct {
	Start  int
	Length int
}

func (r Range) end() int { return r.Start + r.Length }

// RangeMapping pairs a span of the block's source plaintext with the span
// of translated text it corresponds to.
type RangeMapping struct {
	Source Range
	Target Range
}

// TranslateTags projects inline annotations from this block's source
// plaintext onto targetText, per the mappings (spec.md §4.3.2). Each
// mapping's target span is filled with a chunk carrying the tags (and
// inline content) of the source chunk covering mapping.Source.Start.
// Empty-text source chunks that fall inside a mapping's source range
// (references, anchors with no text) are cloned immediately after that
// chunk, at the mapping's target end. Gaps between mapped target ranges,
// and any trailing target text, are filled with chunks carrying the
// block's CommonTags(). Overlapping target ranges are rejected.
func (b *TextBlock) TranslateTags(targetText string, mappings []RangeMapping) (*TextBlock, error) {
	offsets := b.Offsets()
	common := b.CommonTags()

	findChunkAt := func(pos int) int {
		for i, o := range offsets {
			if pos >= o.Start && pos < o.Start+o.Length {
				return i
			}
		}
		if len(offsets) > 0 {
			return len(offsets) - 1
		}
		return -1
	}

	sorted := append([]RangeMapping(nil), mappings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Target.Start < sorted[j].Target.Start })

	var out []*TextChunk
	cursor := 0

	for mi, m := range sorted {
		if m.Target.Start < cursor {
			var prev RangeMapping
			if mi > 0 {
				prev = sorted[mi-1]
			}
			return nil, &RangeOverlapError{A: prev.Target, B: m.Target}
		}
		if m.Target.Start > cursor {
			out = append(out, NewTextChunk(targetText[cursor:m.Target.Start], common))
		}

		idx := findChunkAt(m.Source.Start)
		if idx < 0 {
			return nil, &InternalError{Reason: "translate_tags: empty source block"}
		}
		src := b.Chunks[idx]

		newChunk := NewTextChunk(targetText[m.Target.Start:m.Target.end()], src.Tags)
		newChunk.Content = src.Content
		out = append(out, newChunk)
		cursor = m.Target.end()

		for i, o := range offsets {
			if i == idx || b.Chunks[i].Text != "" {
				continue
			}
			if o.Start >= m.Source.Start && o.Start <= m.Source.end() {
				out = append(out, b.Chunks[i].clone())
			}
		}
	}

	if cursor < len(targetText) {
		out = append(out, NewTextChunk(targetText[cursor:], common))
	}

	return &TextBlock{Chunks: out, CanSegment: b.CanSegment}, nil
}
