package lineardoc

// Segment partitions the block into sentences using boundaryFn, wrapping
// each sentence in a common outer <span class="cx-segment"
// data-segmentid="..."> tag and assigning data-linkid to every
// translatable link it contains. ids come from gen, shared with whatever
// else in the owning Doc draws ids from the same counter.
//
// Per spec.md §4.3.1, a block that cannot segment, or whose root item is
// a transclusion, is returned unchanged.
func (b *TextBlock) Segment(boundaryFn BoundaryFunc, gen *idGenerator) (*TextBlock, error) {
	if !b.CanSegment {
		return b, nil
	}
	if root := b.GetRootItem(); root != nil && IsTransclusion(root) {
		return b, nil
	}

	plainText := b.GetPlainText()
	rawBoundaries, err := boundaryFn(plainText)
	if err != nil {
		return nil, err
	}
	boundaries, err := validateBoundaries(rawBoundaries, len(plainText))
	if err != nil {
		return nil, err
	}

	out := &TextBlock{CanSegment: b.CanSegment}
	var accum []*TextChunk
	bi := 0
	cursor := 0

	flush := func() {
		if len(accum) == 0 {
			return
		}
		segTag := NewTag("span")
		segTag.Attrs.Set("class", "cx-segment")
		segTag.Attrs.Set("data-segmentid", gen.next("segment"))
		addCommonTag(accum, segTag)
		setLinkIDsInPlace(accum, gen)
		out.Chunks = append(out.Chunks, accum...)
		accum = nil
	}

	for _, c := range b.Chunks {
		chunkStart := cursor
		chunkEnd := cursor + len(c.Text)

		if len(c.Text) == 0 {
			accum = append(accum, c)
			continue
		}

		for bi < len(boundaries) && boundaries[bi] <= chunkStart {
			if boundaries[bi] == chunkStart && chunkStart > 0 {
				flush()
			}
			bi++
		}

		var interior []int
		for j := bi; j < len(boundaries); j++ {
			if boundaries[j] > chunkStart && boundaries[j] < chunkEnd {
				interior = append(interior, boundaries[j])
				bi = j + 1
			} else if boundaries[j] >= chunkEnd {
				break
			}
		}

		if len(interior) == 0 {
			accum = append(accum, c)
		} else {
			prev := 0
			for _, abs := range interior {
				rel := abs - chunkStart
				piece := NewTextChunk(c.Text[prev:rel], c.Tags)
				accum = append(accum, piece)
				flush()
				prev = rel
			}
			last := NewTextChunk(c.Text[prev:], c.Tags)
			last.Content = c.Content
			accum = append(accum, last)
		}

		cursor = chunkEnd
	}
	flush()

	return out, nil
}

// setLinkIDsInPlace walks every chunk's tag stack and tags every
// translatable link that doesn't already carry one with class="cx-link"
// and data-linkid. Because Tag pointers are shared across chunks, a link
// spanning several chunks is only assigned once.
func setLinkIDsInPlace(chunks []*TextChunk, gen *idGenerator) {
	for _, c := range chunks {
		for _, t := range c.Tags {
			if IsTranslatableLink(t) && !t.Attrs.Has("data-linkid") {
				addClassToken(t, "cx-link")
				t.Attrs.Set("data-linkid", gen.next("link"))
			}
		}
	}
}
