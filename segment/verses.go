// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"math"
	"slices"

	"github.com/ik5/audregion/region"
)

// boundaryEps is how close two boundaries must be to count as one.
const boundaryEps = 1e-3

// MergeVerses reconciles detected spans with an independent verse
// partition.
//
// The boundaries of both sets are unioned and a region is derived between
// each consecutive pair. Pairs shorter than minLen are folded into the
// previous region, unless that would erase a verse start, in which case the
// pair is carried into the next region. Pairs covered by neither set are
// dropped. Each region takes the label of the verse starting where it
// starts.
//
// When the verses do not overlap any detected span they are returned
// unchanged.
func MergeVerses(spans, verses []region.Span, minLen float64) []region.Span {
	if len(verses) == 0 {
		return slices.Clone(spans)
	}
	if !overlapping(spans, verses) {
		return slices.Clone(verses)
	}

	bounds := boundaries(spans, verses)

	var (
		out     []region.Span
		pending float64
		carried bool
	)
	for i := 0; i+1 < len(bounds); i++ {
		a, b := bounds[i], bounds[i+1]
		if !covered(spans, verses, (a+b)/2) {
			carried = false
			continue
		}
		if carried {
			a, carried = pending, false
		}

		if b-a >= minLen {
			out = append(out, region.Span{Start: a, End: b})
			continue
		}

		last := len(out) - 1
		foldBack := last >= 0 && math.Abs(out[last].End-a) < boundaryEps &&
			!(verseBoundary(verses, a) && !verseBoundary(verses, b))
		if foldBack {
			out[last].End = b
			continue
		}
		pending, carried = a, true
	}
	if carried && len(out) > 0 && math.Abs(out[len(out)-1].End-pending) < boundaryEps {
		out[len(out)-1].End = bounds[len(bounds)-1]
	}

	for k := range out {
		out[k].Label = verseLabel(verses, out[k].Start)
	}

	return out
}

func overlapping(spans, verses []region.Span) bool {
	for _, v := range verses {
		for _, s := range spans {
			if v.Start < s.End && v.End > s.Start {
				return true
			}
		}
	}

	return false
}

// boundaries returns every start and end of both sets, sorted, with points
// closer than boundaryEps collapsed into the first.
func boundaries(sets ...[]region.Span) []float64 {
	var all []float64
	for _, set := range sets {
		for _, sp := range set {
			all = append(all, sp.Start, sp.End)
		}
	}
	slices.Sort(all)

	out := all[:0]
	for _, t := range all {
		if len(out) > 0 && t-out[len(out)-1] < boundaryEps {
			continue
		}
		out = append(out, t)
	}

	return out
}

func covered(spans, verses []region.Span, t float64) bool {
	for _, set := range [][]region.Span{spans, verses} {
		for _, sp := range set {
			if t >= sp.Start && t < sp.End {
				return true
			}
		}
	}

	return false
}

func verseBoundary(verses []region.Span, t float64) bool {
	for _, v := range verses {
		if math.Abs(v.Start-t) < boundaryEps || math.Abs(v.End-t) < boundaryEps {
			return true
		}
	}

	return false
}

func verseLabel(verses []region.Span, start float64) string {
	for _, v := range verses {
		if math.Abs(v.Start-start) < boundaryEps {
			return v.Label
		}
	}

	return ""
}
