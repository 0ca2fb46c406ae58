package lineardoc

import "strconv"

// idGenerator hands out the monotonically increasing, request-local ids
// used for data-segmentid and data-linkid attributes. Per spec.md §4.4,
// both draw from a single shared counter per Doc — uniqueness within a
// kind follows from uniqueness across the whole sequence — with the kind
// only affecting which attribute the caller attaches the value to.
type idGenerator struct {
	counter int
}

// next returns the next id in the sequence as a decimal string. kind is
// accepted for readability at call sites and does not affect the value.
func (g *idGenerator) next(kind string) string {
	v := g.counter
	g.counter++
	return strconv.Itoa(v)
}
