// SPDX-License-Identifier: EPL-2.0

package region

import (
	"cmp"
	"math"
	"slices"
)

// Mode selects between a chain of contiguous regions and a single
// selection.
type Mode int

const (
	Multi Mode = iota
	Single
)

// Direction picks the neighbour that absorbs a removed region.
type Direction int

const (
	// AutoDirection prefers the next neighbour and falls back to the
	// previous one.
	AutoDirection Direction = iota
	Previous
	Next
)

const none = -1

// loadSlack tolerates the five-decimal rounding of saved documents.
const loadSlack = 1e-5

type node struct {
	region Region
	gen    uint32
	live   bool
	marker bool
	prev   int
	next   int
}

// Store holds the regions of one buffer. Spans are kept in a doubly linked
// chain ordered by start; markers live beside the chain.
//
// Store is not safe for concurrent use. All mutation happens on the caller's
// goroutine and listeners run synchronously.
type Store struct {
	nodes []node
	free  []int
	head  int
	tail  int
	count int

	duration float64
	mode     Mode
	loop     bool

	listeners    map[int]Listener
	nextListener int
}

// Option configures a Store.
type Option func(*Store)

// WithMode sets the store mode. The default is Multi.
func WithMode(m Mode) Option {
	return func(s *Store) { s.mode = m }
}

// WithLoop makes new regions loop during region playback.
func WithLoop(loop bool) Option {
	return func(s *Store) { s.loop = loop }
}

// NewStore returns an empty store for a buffer of the given duration.
func NewStore(duration float64, opts ...Option) *Store {
	s := &Store{
		head:      none,
		tail:      none,
		duration:  math.Max(duration, 0),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Mode returns the store mode.
func (s *Store) Mode() Mode { return s.mode }

// Duration returns the timeline length in seconds.
func (s *Store) Duration() float64 { return s.duration }

// SetDuration changes the timeline length. Regions are not touched; use
// ApplyEdit when the buffer itself changed.
func (s *Store) SetDuration(d float64) { s.duration = math.Max(d, 0) }

// Len returns the number of spans, markers excluded.
func (s *Store) Len() int { return s.count }

func (s *Store) alloc(r Region, marker bool) int {
	var i int
	if n := len(s.free); n > 0 {
		i = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		i = len(s.nodes)
		s.nodes = append(s.nodes, node{})
	}

	n := &s.nodes[i]
	n.gen++
	n.live = true
	n.marker = marker
	n.prev, n.next = none, none
	r.ID = ID{index: uint32(i), gen: n.gen}
	n.region = r

	return i
}

func (s *Store) release(i int) {
	n := &s.nodes[i]
	n.live = false
	n.region = Region{}
	s.free = append(s.free, i)
}

func (s *Store) lookup(id ID) (int, bool) {
	if id.IsZero() || int(id.index) >= len(s.nodes) {
		return 0, false
	}
	n := &s.nodes[id.index]
	if !n.live || n.gen != id.gen {
		return 0, false
	}

	return int(id.index), true
}

// linkAfter puts i into the chain after at; at == none links at the head.
func (s *Store) linkAfter(i, at int) {
	n := &s.nodes[i]
	if at == none {
		n.prev = none
		n.next = s.head
		if s.head != none {
			s.nodes[s.head].prev = i
		}
		s.head = i
	} else {
		n.prev = at
		n.next = s.nodes[at].next
		if n.next != none {
			s.nodes[n.next].prev = i
		}
		s.nodes[at].next = i
	}
	if n.next == none {
		s.tail = i
	}
	s.count++
}

func (s *Store) unlink(i int) {
	n := &s.nodes[i]
	if n.prev != none {
		s.nodes[n.prev].next = n.next
	} else {
		s.head = n.next
	}
	if n.next != none {
		s.nodes[n.next].prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = none, none
	s.count--
}

// Get returns the region with the given ID.
func (s *Store) Get(id ID) (Region, bool) {
	i, ok := s.lookup(id)
	if !ok {
		return Region{}, false
	}

	return s.nodes[i].region, true
}

// First returns the earliest span.
func (s *Store) First() (ID, bool) { return s.idOf(s.head) }

// Last returns the latest span.
func (s *Store) Last() (ID, bool) { return s.idOf(s.tail) }

// Next returns the span following id in the chain.
func (s *Store) Next(id ID) (ID, bool) {
	i, ok := s.lookup(id)
	if !ok || s.nodes[i].marker {
		return ID{}, false
	}

	return s.idOf(s.nodes[i].next)
}

// Prev returns the span preceding id in the chain.
func (s *Store) Prev(id ID) (ID, bool) {
	i, ok := s.lookup(id)
	if !ok || s.nodes[i].marker {
		return ID{}, false
	}

	return s.idOf(s.nodes[i].prev)
}

func (s *Store) idOf(i int) (ID, bool) {
	if i == none {
		return ID{}, false
	}

	return s.nodes[i].region.ID, true
}

// At returns the span containing pos. The end of the last span counts as
// inside it.
func (s *Store) At(pos float64) (ID, bool) {
	for i := s.head; i != none; i = s.nodes[i].next {
		r := s.nodes[i].region
		if r.Contains(pos) || (s.nodes[i].next == none && math.Abs(pos-r.End) < eps) {
			return r.ID, true
		}
	}

	return ID{}, false
}

// Regions returns the spans in chain order.
func (s *Store) Regions() []Region {
	out := make([]Region, 0, s.count)
	for i := s.head; i != none; i = s.nodes[i].next {
		out = append(out, s.nodes[i].region)
	}

	return out
}

// Markers returns the markers ordered by position.
func (s *Store) Markers() []Region {
	var out []Region
	for i := range s.nodes {
		if s.nodes[i].live && s.nodes[i].marker {
			out = append(out, s.nodes[i].region)
		}
	}
	slices.SortFunc(out, func(a, b Region) int { return cmp.Compare(a.Start, b.Start) })

	return out
}

// Spans returns spans and markers merged by start, ready for serialization.
func (s *Store) Spans() []Span {
	regions := append(s.Regions(), s.Markers()...)
	slices.SortStableFunc(regions, func(a, b Region) int { return cmp.Compare(a.Start, b.Start) })

	out := make([]Span, len(regions))
	for k, r := range regions {
		out[k] = r.Span()
	}

	return out
}

// Add splits the span containing at into two and returns the ID of the new
// right-hand span. On an empty store the first span [0, duration] is created
// and split. A position in a gap creates a span from at to the next start.
//
// A position that already is a boundary is a no-op: Add returns the zero ID
// and a nil error without notifying.
func (s *Store) Add(at float64, origin Origin) (ID, error) {
	if s.mode == Single {
		return ID{}, ErrSingleMode
	}
	if s.duration <= 0 {
		return ID{}, ErrNoDuration
	}
	if at < 0 || at > s.duration+eps || math.IsNaN(at) {
		return ID{}, ErrInvalidBounds
	}

	if s.count == 0 {
		first := s.alloc(Region{Start: 0, End: s.duration, Loop: s.loop}, false)
		s.linkAfter(first, none)
		if at < eps || at > s.duration-eps {
			id := s.nodes[first].region.ID
			s.emit(Added, origin, id)

			return id, nil
		}
		id := s.split(first, at)
		s.emit(Added, origin, id)

		return id, nil
	}

	prev := none
	for i := s.head; i != none; i = s.nodes[i].next {
		r := s.nodes[i].region
		if math.Abs(at-r.Start) < eps || math.Abs(at-r.End) < eps {
			return ID{}, nil
		}
		if r.Start < at && at < r.End {
			id := s.split(i, at)
			s.emit(Added, origin, id)

			return id, nil
		}
		if r.Start > at {
			break
		}
		prev = i
	}

	// gap
	end := s.duration
	if prev != none {
		if n := s.nodes[prev].next; n != none {
			end = s.nodes[n].region.Start
		}
	} else if s.head != none {
		end = s.nodes[s.head].region.Start
	}
	if end-at < eps {
		return ID{}, nil
	}

	i := s.alloc(Region{Start: at, End: end, Loop: s.loop}, false)
	s.linkAfter(i, prev)
	id := s.nodes[i].region.ID
	s.emit(Added, origin, id)

	return id, nil
}

func (s *Store) split(i int, at float64) ID {
	left := s.nodes[i].region
	j := s.alloc(Region{Start: at, End: left.End, Loop: left.Loop, Color: left.Color}, false)
	s.nodes[i].region.End = at
	s.linkAfter(j, i)

	return s.nodes[j].region.ID
}

// SetSpan inserts an explicit span. In single mode it replaces whatever the
// store held; in multi mode it must fit in a gap.
func (s *Store) SetSpan(start, end float64, label string, origin Origin) (ID, error) {
	if !(start < end) || start < 0 || (s.duration > 0 && end > s.duration+eps) {
		return ID{}, ErrInvalidBounds
	}

	if s.mode == Single {
		s.reset()
		i := s.alloc(Region{Start: start, End: end, Label: label, Loop: s.loop}, false)
		s.linkAfter(i, none)
		id := s.nodes[i].region.ID
		s.emit(Added, origin, id)

		return id, nil
	}

	prev := none
	for i := s.head; i != none; i = s.nodes[i].next {
		r := s.nodes[i].region
		if start < r.End-eps && end > r.Start+eps {
			return ID{}, ErrOverlap
		}
		if r.Start >= end-eps {
			break
		}
		prev = i
	}

	i := s.alloc(Region{Start: start, End: end, Label: label, Loop: s.loop}, false)
	s.linkAfter(i, prev)
	id := s.nodes[i].region.ID
	s.emit(Added, origin, id)

	return id, nil
}

// AddMarker adds a zero-length annotation at pos. Markers are not part of
// the chain and never absorb or donate time.
func (s *Store) AddMarker(at float64, label string, origin Origin) (ID, error) {
	if at < 0 || (s.duration > 0 && at > s.duration+eps) || math.IsNaN(at) {
		return ID{}, ErrInvalidBounds
	}

	i := s.alloc(Region{Start: at, End: at, Label: label}, true)
	id := s.nodes[i].region.ID
	s.emit(Added, origin, id)

	return id, nil
}

// SetLabel changes the label of a region or marker.
func (s *Store) SetLabel(id ID, label string, origin Origin) error {
	i, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}
	s.nodes[i].region.Label = label
	s.emit(Resized, origin, id)

	return nil
}

// MergeDirection decides which neighbour absorbs id when it is removed
// while the playhead is at position: the previous one when the playhead sits
// within NearThreshold of the region start, the next one otherwise.
func (s *Store) MergeDirection(id ID, position float64) Direction {
	i, ok := s.lookup(id)
	if !ok {
		return Next
	}
	n := s.nodes[i]
	if n.prev != none && math.Abs(position-n.region.Start) <= NearThreshold {
		return Previous
	}
	if n.next == none && n.prev != none {
		return Previous
	}

	return Next
}

// Remove deletes a span and extends a neighbour over its interval so the
// chain keeps its coverage. If the preferred neighbour does not exist the
// other one is used. Removing the only span clears the store. Markers are
// simply deleted.
func (s *Store) Remove(id ID, dir Direction, origin Origin) error {
	i, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}

	if s.nodes[i].marker {
		s.release(i)
		s.emit(Removed, origin, id)

		return nil
	}

	if s.count == 1 {
		s.Clear(false, origin)

		return nil
	}

	n := s.nodes[i]
	if dir == AutoDirection {
		dir = Next
	}
	if dir == Previous && n.prev == none {
		dir = Next
	}
	if dir == Next && n.next == none {
		dir = Previous
	}

	if dir == Previous {
		s.nodes[n.prev].region.End = n.region.End
	} else {
		s.nodes[n.next].region.Start = n.region.Start
	}

	s.unlink(i)
	s.release(i)
	s.emit(Removed, origin, id)

	return nil
}

// RemoveAt removes id, choosing the absorbing neighbour with MergeDirection.
func (s *Store) RemoveAt(id ID, position float64, origin Origin) error {
	return s.Remove(id, s.MergeDirection(id, position), origin)
}

// Resize moves both boundaries of a span. Neighbours follow as described
// for ResizeStart and ResizeEnd.
//
// In multi mode the chain extremities are pinned: the head always starts at
// 0 and the tail always ends at the duration. A new start for the head or a
// new end for the tail is therefore discarded without an error; read the
// region back to see the applied bounds.
func (s *Store) Resize(id ID, start, end float64, origin Origin) error {
	return s.resize(id, start, end, true, true, origin)
}

// ResizeStart moves the start of a span. The previous span's end follows
// so no gap or overlap appears. A start that would invert the previous span
// is clamped MinSpan after that span's start. The head of the chain is
// pinned to 0.
func (s *Store) ResizeStart(id ID, start float64, origin Origin) error {
	return s.resize(id, start, 0, true, false, origin)
}

// ResizeEnd moves the end of a span. The next span's start follows. An end
// that would invert the next span is clamped MinSpan before that span's
// end. The tail of the chain is pinned to the duration.
func (s *Store) ResizeEnd(id ID, end float64, origin Origin) error {
	return s.resize(id, 0, end, false, true, origin)
}

func (s *Store) resize(id ID, start, end float64, setStart, setEnd bool, origin Origin) error {
	i, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}
	if math.IsNaN(start) || math.IsNaN(end) {
		return ErrInvalidBounds
	}

	n := s.nodes[i]
	if n.marker {
		if !setStart {
			start = end
		}
		if start < 0 || (s.duration > 0 && start > s.duration+eps) {
			return ErrInvalidBounds
		}
		s.nodes[i].region.Start = start
		s.nodes[i].region.End = start
		s.emit(Resized, origin, id)

		return nil
	}

	ns, ne := n.region.Start, n.region.End
	if setStart {
		ns = start
	}
	if setEnd {
		ne = end
	}
	if !(ns < ne) {
		return ErrInvalidBounds
	}

	if s.mode == Single {
		ns = math.Max(ns, 0)
		if s.duration > 0 {
			ne = math.Min(ne, s.duration)
		}
	} else {
		if setStart {
			if n.prev == none {
				ns = 0
			} else if lo := s.nodes[n.prev].region.Start + MinSpan; ns < lo {
				ns = lo
			}
		}
		if setEnd {
			if n.next == none {
				if s.duration > 0 {
					ne = s.duration
				}
			} else if hi := s.nodes[n.next].region.End - MinSpan; ne > hi {
				ne = hi
			}
		}
	}
	if !(ns < ne) {
		return ErrInvalidBounds
	}

	s.nodes[i].region.Start = ns
	s.nodes[i].region.End = ne
	if s.mode == Multi {
		if setStart && n.prev != none {
			s.nodes[n.prev].region.End = ns
		}
		if setEnd && n.next != none {
			s.nodes[n.next].region.Start = ne
		}
	}
	s.emit(Resized, origin, id)

	return nil
}

// Clear removes every span, and the markers unless keepMarkers is set.
func (s *Store) Clear(keepMarkers bool, origin Origin) {
	var markers []Region
	if keepMarkers {
		markers = s.Markers()
	}

	s.reset()
	for _, m := range markers {
		s.alloc(m, true)
	}
	s.emit(Cleared, origin, ID{})
}

// reset drops all regions. Slot generations survive so old IDs stay stale.
func (s *Store) reset() {
	s.free = s.free[:0]
	for i := range s.nodes {
		s.nodes[i].live = false
		s.nodes[i].region = Region{}
		s.nodes[i].prev, s.nodes[i].next = none, none
		s.free = append(s.free, len(s.nodes)-1-i)
	}
	s.head, s.tail, s.count = none, none, 0
}

// Load replaces the store contents with spans. Zero-length spans become
// markers. Spans are sorted by start; overlapping spans are rejected with
// ErrOverlap and leave the store untouched. An empty set is a no-op.
//
// When the duration is known, spans ending after it are rejected with
// ErrInvalidBounds. Ends within the rounding of a saved document are
// clamped to the duration.
func (s *Store) Load(spans []Span, origin Origin) error {
	if len(spans) == 0 {
		return nil
	}

	sorted := slices.Clone(spans)
	slices.SortStableFunc(sorted, func(a, b Span) int { return cmp.Compare(a.Start, b.Start) })

	var (
		intervals int
		lastEnd   = math.Inf(-1)
	)
	for _, sp := range sorted {
		if math.IsNaN(sp.Start) || math.IsNaN(sp.End) || sp.Start < 0 || sp.End < sp.Start {
			return ErrInvalidBounds
		}
		if s.duration > 0 && sp.End > s.duration+loadSlack {
			return ErrInvalidBounds
		}
		if sp.End-sp.Start < eps {
			continue
		}
		if sp.Start < lastEnd-eps {
			return ErrOverlap
		}
		lastEnd = sp.End
		intervals++
	}
	if s.mode == Single && intervals > 1 {
		return ErrSingleMode
	}

	s.reset()
	for _, sp := range sorted {
		if s.duration > 0 {
			sp.Start = min(sp.Start, s.duration)
			sp.End = min(sp.End, s.duration)
		}
		r := Region{Start: sp.Start, End: sp.End, Label: sp.Label, Loop: s.loop}
		if sp.End-sp.Start < eps {
			r.End = r.Start
			s.alloc(r, true)

			continue
		}
		i := s.alloc(r, false)
		s.linkAfter(i, s.tail)
	}
	if s.duration == 0 && lastEnd > 0 {
		s.duration = lastEnd
	}
	s.emit(Loaded, origin, ID{})

	return nil
}
