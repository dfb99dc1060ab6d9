// SPDX-License-Identifier: EPL-2.0

// Package transport tracks the playhead over a region store.
//
// The playback driver reports positions through Tick and the end of media
// through Finish; user actions arrive through TogglePlay, Goto and Skip.
// Ticks may be duplicated or arrive out of order, so a backwards jump
// shorter than region.NearThreshold is treated as stale and ignored.
package transport

import (
	"math"

	"github.com/ik5/audregion/region"
)

// EndSnap is the largest gap between playhead and duration that is closed
// by snapping to the end when playback finishes.
const EndSnap = 0.2

// State of the transport.
type State int

const (
	Stopped State = iota
	Playing
	PlayingRegionOnly
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case PlayingRegionOnly:
		return "playing-region"
	default:
		return "unknown"
	}
}

// EventKind names a transport event.
type EventKind int

const (
	StateChanged EventKind = iota
	Seeked
	RegionEntered
	RegionEnded
	Finished
)

// Event is delivered to subscribers after the transport changed.
type Event struct {
	Kind     EventKind
	State    State
	Position float64
	Region   region.ID
}

// Transport is the playback state machine. It is not safe for concurrent
// use; the driver and the caller must serialize their calls.
type Transport struct {
	store      *region.Store
	state      State
	position   float64
	regionOnce bool
	current    region.ID
	playing    region.ID
	listeners  []func(Event)
}

// New returns a stopped transport at position 0.
func New(store *region.Store) *Transport {
	t := &Transport{store: store}
	t.current, _ = store.At(0)

	return t
}

// Subscribe registers fn for every event.
func (t *Transport) Subscribe(fn func(Event)) {
	t.listeners = append(t.listeners, fn)
}

func (t *Transport) emit(kind EventKind, id region.ID) {
	e := Event{Kind: kind, State: t.state, Position: t.position, Region: id}
	for _, fn := range t.listeners {
		fn(e)
	}
}

func (t *Transport) State() State { return t.state }

func (t *Transport) Position() float64 { return t.position }

func (t *Transport) Duration() float64 { return t.store.Duration() }

// RegionOnce reports whether region-only playback is armed.
func (t *Transport) RegionOnce() bool { return t.regionOnce }

// Current returns the region under the playhead.
func (t *Transport) Current() (region.ID, bool) {
	if _, ok := t.store.Get(t.current); !ok {
		return region.ID{}, false
	}

	return t.current, true
}

// PlayRegionOnce arms or disarms region-only playback. While armed,
// TogglePlay from Stopped plays the region under the playhead and stops at
// its end.
func (t *Transport) PlayRegionOnce(on bool) { t.regionOnce = on }

func (t *Transport) setState(s State) {
	if t.state == s {
		return
	}
	t.state = s
	t.emit(StateChanged, t.current)
}

// TogglePlay starts or stops playback and returns the new state.
func (t *Transport) TogglePlay() State {
	if t.state != Stopped {
		t.setState(Stopped)
		return t.state
	}

	if t.regionOnce {
		if id, ok := t.store.At(t.position); ok {
			r, _ := t.store.Get(id)
			t.playing = id
			t.moveTo(r.Start)
			t.setState(PlayingRegionOnly)

			return t.state
		}
	}

	if d := t.Duration(); d > 0 && t.position >= d-1e-9 {
		t.moveTo(0)
	}
	t.setState(Playing)

	return t.state
}

// Goto moves the playhead. It is legal in every state. In region-only
// playback the region under the new position becomes the one being played.
func (t *Transport) Goto(pos float64) {
	t.moveTo(pos)
	t.emit(Seeked, t.current)

	if t.state == PlayingRegionOnly {
		if id, ok := t.store.At(t.position); ok {
			t.playing = id
		}
	}
}

// Skip moves the playhead by delta seconds.
func (t *Transport) Skip(delta float64) { t.Goto(t.position + delta) }

// moveTo clamps pos into the timeline and re-evaluates the current region.
func (t *Transport) moveTo(pos float64) {
	if math.IsNaN(pos) {
		return
	}
	t.position = math.Max(0, math.Min(pos, t.Duration()))

	id, ok := t.store.At(t.position)
	if ok && id != t.current {
		t.current = id
		t.emit(RegionEntered, id)
	} else if !ok {
		t.current = region.ID{}
	}
}

// Tick is the driver's position report. Stale or duplicate reports and
// reports while stopped are ignored.
func (t *Transport) Tick(pos float64) {
	if t.state == Stopped || math.IsNaN(pos) {
		return
	}
	if pos == t.position || (pos < t.position && t.position-pos < region.NearThreshold) {
		return
	}

	if t.state == PlayingRegionOnly {
		r, ok := t.store.Get(t.playing)
		if !ok {
			t.setState(Playing)
		} else if pos >= r.End {
			if r.Loop {
				t.moveTo(r.Start)
				t.emit(Seeked, r.ID)

				return
			}
			t.moveTo(r.End)
			t.emit(RegionEnded, r.ID)
			t.setState(Stopped)

			return
		}
	}

	if d := t.Duration(); pos >= d {
		t.position = d
		t.Finish()
		return
	}

	t.moveTo(pos)
}

// Finish is the driver's end-of-media report. A playhead within EndSnap of
// the duration snaps to it so no further boundary event fires.
func (t *Transport) Finish() {
	if d := t.Duration(); d-t.position <= EndSnap {
		t.position = d
	}
	t.emit(Finished, t.current)
	t.setState(Stopped)
}
