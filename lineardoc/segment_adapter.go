package lineardoc

import "sort"

// BoundaryFunc maps plaintext to an ordered sequence of byte offsets where
// a new sentence begins. It is injected per language; the core treats it
// as an opaque collaborator (spec.md §4.9, out of scope here).
type BoundaryFunc func(plainText string) ([]int, error)

// validateBoundaries sorts and de-duplicates offsets, then rejects any
// offset outside [0, len(text)]. Some sentence splitters re-search
// substrings and can emit duplicate or non-monotonic offsets on repeated
// text (spec.md §9 design note); this is the single place that defends
// against it before the offsets are used to cut chunks.
func validateBoundaries(offsets []int, textLen int) ([]int, error) {
	if len(offsets) == 0 {
		return nil, nil
	}
	sorted := append([]int(nil), offsets...)
	sort.Ints(sorted)

	out := sorted[:0:0]
	var prev = -1
	for _, o := range sorted {
		if o == prev {
			continue
		}
		if o < 0 || o > textLen {
			return nil, &SegmenterError{Reason: "offset out of bounds", Offset: o}
		}
		out = append(out, o)
		prev = o
	}
	return out, nil
}
