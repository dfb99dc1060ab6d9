// SPDX-License-Identifier: EPL-2.0

package region

// Origin tells listeners whether a change came from the user or from an
// automated process such as segmentation or edit repair. Callers use it to
// decide whether to persist.
type Origin int

const (
	User Origin = iota
	Auto
)

func (o Origin) String() string {
	if o == Auto {
		return "auto"
	}
	return "user"
}

// ChangeKind names the mutation that produced a Change.
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Resized
	Cleared
	Loaded
	Repositioned
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Resized:
		return "resized"
	case Cleared:
		return "cleared"
	case Loaded:
		return "loaded"
	case Repositioned:
		return "repositioned"
	default:
		return "unknown"
	}
}

// Change is emitted after every mutating Store operation.
type Change struct {
	Kind   ChangeKind
	Origin Origin
	// Count is the number of spans (markers excluded) after the change.
	Count int
	// ID is the region the change is about, when there is a single one.
	ID ID
}

// Listener receives store changes synchronously, on the mutating goroutine.
type Listener func(Change)

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	key := s.nextListener
	s.nextListener++
	s.listeners[key] = fn

	return func() { delete(s.listeners, key) }
}

func (s *Store) emit(kind ChangeKind, origin Origin, id ID) {
	if len(s.listeners) == 0 {
		return
	}

	c := Change{Kind: kind, Origin: origin, Count: s.count, ID: id}
	// deliver in subscription order
	for key := 0; key < s.nextListener; key++ {
		if fn, ok := s.listeners[key]; ok {
			fn(c)
		}
	}
}
