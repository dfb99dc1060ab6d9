// SPDX-License-Identifier: EPL-2.0

package region

import (
	"fmt"
	"math"
)

const (
	// NearThreshold is how close, in seconds, a position must be to a
	// boundary to count as "at" it. Playback callbacks are also deduplicated
	// with it.
	NearThreshold = 0.3

	// MinSpan is the shortest region a resize may leave behind.
	MinSpan = 0.001

	// eps is the tolerance for treating two boundaries as the same point.
	eps = 1e-6
)

// ID identifies a region inside one Store. IDs are generational: once a
// region is deleted its ID never resolves again, even if the slot is reused.
// The zero ID is never issued.
type ID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool { return id.gen == 0 }

func (id ID) String() string {
	if id.IsZero() {
		return "r-"
	}
	return fmt.Sprintf("r%d.%d", id.index, id.gen)
}

// Region is a labeled interval over the loaded buffer, in seconds.
// A Region with Start == End is a marker.
type Region struct {
	ID    ID
	Start float64
	End   float64
	Label string
	Color string
	Loop  bool
}

// Length in seconds.
func (r Region) Length() float64 { return r.End - r.Start }

// IsMarker reports whether r is a point annotation.
func (r Region) IsMarker() bool { return math.Abs(r.End-r.Start) < eps }

// Contains reports whether pos lies in [Start, End).
func (r Region) Contains(pos float64) bool {
	return pos >= r.Start && pos < r.End
}

// Span is the serialized form of a region.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
}

// Length in seconds.
func (s Span) Length() float64 { return s.End - s.Start }

// Span returns the serialized form of r.
func (r Region) Span() Span {
	return Span{Start: r.Start, End: r.End, Label: r.Label}
}
