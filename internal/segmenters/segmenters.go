// Package segmenters adapts per-language sentence splitters — an
// external collaborator not part of the core (spec.md §1, §4.9) — into
// the lineardoc.BoundaryFunc shape the Doc/TextBlock segmentation
// algorithm expects: plaintext in, ordered sentence-start byte offsets
// out.
package segmenters

import (
	"sort"
	"strings"

	"github.com/wikimedia/cxserver-lineardoc/lineardoc"
)

// SentenceSplitter is the injected per-language collaborator: given a
// language code and plaintext, it returns the text split into ordered,
// non-overlapping sentences. Implementations may call out to an external
// NLP library or service; this package only consumes the interface.
type SentenceSplitter interface {
	Split(lang string, text string) ([]string, error)
}

// Adapt returns a lineardoc.BoundaryFunc that locates each sentence
// splitter returns within the input text and reports its starting
// offset. Offsets are validated strictly increasing and deduplicated
// downstream by lineardoc itself; this adapter additionally skips a
// sentence it cannot locate at all, rather than fabricating an offset.
func Adapt(splitter SentenceSplitter, lang string) lineardoc.BoundaryFunc {
	return func(text string) ([]int, error) {
		if text == "" {
			return nil, nil
		}
		sentences, err := splitter.Split(lang, text)
		if err != nil {
			return nil, err
		}

		offsets := make([]int, 0, len(sentences))
		pos := 0
		for _, s := range sentences {
			if s == "" {
				continue
			}
			idx := strings.Index(text[pos:], s)
			if idx < 0 {
				idx = strings.Index(text, s)
				if idx < 0 {
					continue
				}
				offsets = append(offsets, idx)
				continue
			}
			offsets = append(offsets, pos+idx)
			pos += idx + len(s)
		}

		sort.Ints(offsets)
		return offsets, nil
	}
}
