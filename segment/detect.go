// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/region"
)

// Detect proposes regions from a peak array covering duration seconds.
//
// Runs of peaks below the silence threshold at least timeThreshold long
// split the timeline. Each region starts where a silence ends and runs up
// to the start of the next region, so trailing silence belongs to the
// preceding region. The first region starts at 0 and the last ends at
// duration. Regions shorter than segLenThreshold are merged into their
// successor and a short final region is dropped.
//
// All-silent or empty input yields no regions.
func Detect(peaks []float64, duration float64, p region.Params) []region.Span {
	n := len(peaks)
	if n == 0 || duration <= 0 {
		return nil
	}

	minLen := minSilence(p.TimeThreshold, duration/float64(n))
	at := func(idx int) float64 { return float64(idx) * duration / float64(n) }

	var (
		starts  []float64
		loud    bool
		run     int
		started bool
	)
	for k, v := range peaks {
		if v < p.SilenceThreshold {
			run++
			continue
		}
		loud = true
		if !started {
			starts = append(starts, 0)
			started = true
		} else if run >= minLen {
			starts = append(starts, at(k))
		}
		run = 0
	}
	if !loud {
		return nil
	}

	spans := make([]region.Span, len(starts))
	for k, s := range starts {
		end := duration
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		spans[k] = region.Span{Start: s, End: end}
	}

	return mergeShort(spans, p.SegLenThreshold)
}

// mergeShort folds every span shorter than minLen into its successor and
// drops a final span that is still too short.
func mergeShort(spans []region.Span, minLen float64) []region.Span {
	out := make([]region.Span, 0, len(spans))

	var carry *float64
	for _, sp := range spans {
		if carry != nil {
			sp.Start = *carry
			carry = nil
		}
		if sp.Length() < minLen {
			start := sp.Start
			carry = &start

			continue
		}
		out = append(out, sp)
	}

	return out
}

// Segment runs detection over buf and, when verses are given, reconciles
// the result with them. cache may be nil.
func Segment(buf *audio.SampleBuffer, p region.Params, verses []region.Span, cache *PeakCache) []region.Span {
	duration := buf.Duration()
	peaks := cache.Peaks(buf, PeakCount(duration, p.TimeThreshold))

	spans := Detect(peaks, duration, p)
	if len(verses) == 0 {
		return spans
	}

	return clip(MergeVerses(spans, verses, p.SegLenThreshold), duration)
}

// clip trims spans to [0, duration]. Spans starting at or past the end are
// dropped. Verse timings may run past a shorter recording.
func clip(spans []region.Span, duration float64) []region.Span {
	out := spans[:0]
	for _, sp := range spans {
		if sp.Start >= duration {
			continue
		}
		sp.End = min(sp.End, duration)
		out = append(out, sp)
	}

	return out
}
