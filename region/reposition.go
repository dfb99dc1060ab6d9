// SPDX-License-Identifier: EPL-2.0

package region

import "math"

// ApplyEdit moves every boundary after the buffer interval [start, end) was
// replaced by newLen seconds of material. Boundaries before start stay,
// boundaries at or after end shift by the length change, and boundaries
// inside the interval are clamped into the new material. Spans left shorter
// than a microsecond are dropped and the duration is updated.
//
// For an insertion (start == end) the span ending at the insertion point
// absorbs the new material.
func (s *Store) ApplyEdit(start, end, newLen float64, origin Origin) {
	if end < start {
		start, end = end, start
	}
	newLen = math.Max(newLen, 0)
	delta := newLen - (end - start)

	remap := func(t float64) float64 {
		switch {
		case t < start:
			return t
		case t >= end:
			return t + delta
		default:
			return start + math.Min(t-start, newLen)
		}
	}

	for i := range s.nodes {
		n := &s.nodes[i]
		if !n.live {
			continue
		}
		n.region.Start = remap(n.region.Start)
		if n.marker {
			n.region.End = n.region.Start
		} else {
			n.region.End = remap(n.region.End)
		}
	}

	for i := s.head; i != none; {
		next := s.nodes[i].next
		if s.nodes[i].region.Length() < eps {
			s.unlink(i)
			s.release(i)
		}
		i = next
	}

	s.duration = math.Max(s.duration+delta, 0)
	s.emit(Repositioned, origin, ID{})
}
