// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"errors"
	"math"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/utils"
)

// DeleteNudge is how far, in seconds, the playhead backs off from a deleted
// span so the splice point stays audible.
const DeleteNudge = 0.03

// ErrEmptyBuffer names an edit requested on a zero-length buffer. Editing
// functions do not return it; they report a no-op Result instead.
var ErrEmptyBuffer = errors.New("edit on empty buffer")

// Kind identifies the edit that produced a Result.
type Kind int

const (
	Append Kind = iota
	Overwrite
	Delete
	Replace
)

func (k Kind) String() string {
	switch k {
	case Append:
		return "append"
	case Overwrite:
		return "overwrite"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Result is the outcome of an edit.
//
// Start and End delimit the interval of the original buffer that was
// replaced and Inserted is the length of the material put in its place, all
// in seconds on the frame grid. Feed them to region.Store.ApplyEdit to move
// region boundaries.
type Result struct {
	Kind     Kind
	Buffer   *audio.SampleBuffer
	Position float64
	Start    float64
	End      float64
	Inserted float64
	// NoOp is set when the edit changed nothing, either because the buffer
	// was empty or the interval was. Buffer is then the input buffer.
	NoOp bool
}

func noop(kind Kind, buf *audio.SampleBuffer) Result {
	return Result{Kind: kind, Buffer: buf, NoOp: true}
}

// frameRange converts [start, end) seconds to a clamped frame range.
func frameRange(buf *audio.SampleBuffer, start, end float64) (int, int) {
	frames := buf.FrameCount()
	lo := min(utils.SecondsToFrame(start, buf.SampleRate), frames)
	hi := min(utils.SecondsToFrame(end, buf.SampleRate), frames)

	return lo, max(lo, hi)
}

// conform resamples material to rate when they differ.
func conform(material *audio.SampleBuffer, rate int) *audio.SampleBuffer {
	if material.Empty() || material.SampleRate == rate {
		return material
	}

	return audio.Resample(material, rate)
}

// splice builds [0, lo) of buf, then material, then [hi, end) of buf with
// the given channel count. Missing channels on either side are taken from
// channel 0.
func splice(buf, material *audio.SampleBuffer, lo, hi, channels int) *audio.SampleBuffer {
	inserted := material.FrameCount()
	tail := buf.FrameCount() - hi
	out := audio.NewSampleBuffer(buf.SampleRate, channels, lo+inserted+tail)

	for c := range channels {
		dst := out.Channels[c]
		src := buf.Channel(c)
		copy(dst, src[:lo])
		if inserted > 0 {
			copy(dst[lo:], material.Channel(c))
		}
		copy(dst[lo+inserted:], src[hi:])
	}

	return out
}

// AppendTo adds material at the end of buf. Appending to an empty or nil
// buffer adopts the material. The playhead moves to the new end.
func AppendTo(buf, material *audio.SampleBuffer) Result {
	if material.Empty() {
		return noop(Append, buf)
	}
	if buf.Empty() {
		out := material.Clone()
		if buf != nil && buf.SampleRate > 0 {
			out = conform(out, buf.SampleRate)
		}
		d := out.Duration()

		return Result{Kind: Append, Buffer: out, Position: d, Inserted: d}
	}

	material = conform(material, buf.SampleRate)
	n := buf.FrameCount()
	out := splice(buf, material, n, n, buf.NumChannels())
	end := buf.Duration()

	return Result{
		Kind:     Append,
		Buffer:   out,
		Position: out.Duration(),
		Start:    end,
		End:      end,
		Inserted: material.Duration(),
	}
}

// OverwriteRange replaces [start, end) of buf with material, keeping the
// channel count of buf. A mono take is broadcast to every channel. An end
// at or before start inserts without removing anything. The playhead lands
// after the inserted material.
func OverwriteRange(buf, material *audio.SampleBuffer, start, end float64) Result {
	if buf.Empty() {
		return noop(Overwrite, buf)
	}

	material = conform(material, buf.SampleRate)
	lo, hi := frameRange(buf, start, end)
	if material.Empty() && lo == hi {
		return noop(Overwrite, buf)
	}

	out := splice(buf, material, lo, hi, buf.NumChannels())
	from := utils.FrameToSeconds(lo, buf.SampleRate)
	inserted := material.Duration()

	return Result{
		Kind:     Overwrite,
		Buffer:   out,
		Position: from + inserted,
		Start:    from,
		End:      utils.FrameToSeconds(hi, buf.SampleRate),
		Inserted: inserted,
	}
}

// DeleteRange removes [start, end) of buf. The playhead moves DeleteNudge
// seconds before start. Deleting everything leaves an empty buffer with the
// same channel layout.
func DeleteRange(buf *audio.SampleBuffer, start, end float64) Result {
	if buf.Empty() {
		return noop(Delete, buf)
	}

	lo, hi := frameRange(buf, start, end)
	if lo == hi {
		return noop(Delete, buf)
	}

	out := splice(buf, nil, lo, hi, buf.NumChannels())
	from := utils.FrameToSeconds(lo, buf.SampleRate)

	return Result{
		Kind:     Delete,
		Buffer:   out,
		Position: math.Max(0, utils.SnapMillis(from-DeleteNudge)),
		Start:    from,
		End:      utils.FrameToSeconds(hi, buf.SampleRate),
	}
}

// ReplaceRange swaps [start, end) of buf for processed material of any
// length. The result has as many channels as the wider side; the narrower
// side contributes its first channel to the extra ones. The playhead stays
// at start.
func ReplaceRange(buf, material *audio.SampleBuffer, start, end float64) Result {
	if buf.Empty() {
		return noop(Replace, buf)
	}

	material = conform(material, buf.SampleRate)
	lo, hi := frameRange(buf, start, end)
	if material.Empty() && lo == hi {
		return noop(Replace, buf)
	}

	channels := max(buf.NumChannels(), material.NumChannels())
	out := splice(buf, material, lo, hi, channels)
	from := utils.FrameToSeconds(lo, buf.SampleRate)

	return Result{
		Kind:     Replace,
		Buffer:   out,
		Position: from,
		Start:    from,
		End:      utils.FrameToSeconds(hi, buf.SampleRate),
		Inserted: material.Duration(),
	}
}
