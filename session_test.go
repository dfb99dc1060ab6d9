// SPDX-License-Identifier: EPL-2.0

package audregion

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audregion/codec"
	"github.com/ik5/audregion/formats/wav"
	"github.com/ik5/audregion/internal/audiotest"
	"github.com/ik5/audregion/region"
	"github.com/ik5/audregion/transport"
)

func loaded(t *testing.T, seconds float64) *Session {
	t.Helper()

	s := NewSession()
	require.NoError(t, s.Load(context.Background(), audiotest.WAV16(audiotest.Ramp(8000, 2, seconds))))

	return s
}

func TestSession_LoadFailureKeepsState(t *testing.T) {
	s := loaded(t, 2)
	_, err := s.Split(1)
	require.NoError(t, err)
	before := s.Buffer()

	err = s.Load(context.Background(), []byte("garbage"))
	require.ErrorIs(t, err, codec.ErrDecodeFailure)

	assert.Same(t, before, s.Buffer())
	assert.Equal(t, 2, s.Regions().Len())
}

func TestSession_LoadClearsRegions(t *testing.T) {
	s := loaded(t, 2)
	_, err := s.Split(1)
	require.NoError(t, err)

	require.NoError(t, s.Load(context.Background(), audiotest.WAV16(audiotest.Silence(8000, 1, 3))))
	assert.Zero(t, s.Regions().Len())
	assert.InDelta(t, 3.0, s.Regions().Duration(), 1e-9)
	assert.False(t, s.CanUndo())
}

func TestSession_AutoSegmentKeepsMarkers(t *testing.T) {
	take := audiotest.Bursts(8000, 28, 0.5,
		[2]float64{0, 4}, [2]float64{5, 8}, [2]float64{9, 11},
		[2]float64{12, 16}, [2]float64{17, 23}, [2]float64{24, 27})

	s := NewSession()
	s.LoadBuffer(take)
	_, err := s.Regions().AddMarker(3, "cue", region.User)
	require.NoError(t, err)

	var origins []region.Origin
	s.Regions().Subscribe(func(c region.Change) { origins = append(origins, c.Origin) })

	n, err := s.AutoSegment(nil)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Len(t, s.Regions().Markers(), 1)
	for _, o := range origins {
		assert.Equal(t, region.Auto, o)
	}
}

func TestSession_AutoSegmentSingleModeRejected(t *testing.T) {
	take := audiotest.Bursts(8000, 6.4, 0.5,
		[2]float64{0, 1.5}, [2]float64{2, 3.5}, [2]float64{4, 5.9})

	s := NewSession(WithMode(region.Single))
	s.LoadBuffer(take)
	kept, err := s.Regions().SetSpan(1, 2, "pick", region.User)
	require.NoError(t, err)

	n, err := s.AutoSegment(nil)
	require.ErrorIs(t, err, region.ErrSingleMode)
	assert.Equal(t, 1, n)

	_, ok := s.Regions().Get(kept)
	assert.True(t, ok, "previous selection survives")
}

func TestSession_AutoSegmentSilent(t *testing.T) {
	s := NewSession()
	s.LoadBuffer(audiotest.Silence(8000, 1, 2))
	_, err := s.Regions().AddMarker(1, "cue", region.User)
	require.NoError(t, err)

	n, err := s.AutoSegment(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, s.Regions().Markers(), 1)
}

func TestSession_ExportWithoutMedia(t *testing.T) {
	s := NewSession()

	_, err := s.Export(wav.PCM16)
	assert.ErrorIs(t, err, codec.ErrEmptyBuffer)

	require.NoError(t, s.LoadRegions([]byte(`{"regions":[{"start":0,"end":2}]}`)))
	first, ok := s.Regions().First()
	require.True(t, ok)

	_, err = s.ExportRegion(first, wav.PCM16)
	assert.ErrorIs(t, err, codec.ErrEmptyBuffer)
}

func TestSession_DeleteRegionAndUndo(t *testing.T) {
	s := loaded(t, 20)
	_, err := s.Split(10)
	require.NoError(t, err)
	tail, err := s.Split(15)
	require.NoError(t, err)
	middle, _ := s.Regions().Prev(tail)

	pos, err := s.DeleteRegion(middle)
	require.NoError(t, err)

	assert.InDelta(t, 9.97, pos, 1e-9)
	assert.InDelta(t, 15.0, s.Duration(), 1e-9)
	assert.InDelta(t, 9.97, s.Transport().Position(), 1e-9)

	regions := s.Regions().Regions()
	require.Len(t, regions, 2)
	assert.Equal(t, 10.0, regions[1].Start)
	assert.InDelta(t, 15.0, regions[1].End, 1e-9)

	require.True(t, s.Undo())
	assert.InDelta(t, 20.0, s.Duration(), 1e-9)
	assert.Zero(t, s.Regions().Len(), "undo clears regions")
	assert.False(t, s.Undo())
}

func TestSession_DeleteRegionUnknown(t *testing.T) {
	s := loaded(t, 1)
	_, err := s.DeleteRegion(region.ID{})
	assert.ErrorIs(t, err, region.ErrNotFound)
}

func TestSession_ReplaceRegion(t *testing.T) {
	s := loaded(t, 10)
	id, err := s.Split(4)
	require.NoError(t, err)
	_, err = s.Split(6)
	require.NoError(t, err)

	// processed audio arrives at 16 kHz mono and is three seconds long
	processed := audiotest.WAV16(audiotest.Constant(16000, 1, 3, 0.25))

	pos, err := s.ReplaceRegion(context.Background(), id, processed)
	require.NoError(t, err)
	assert.Equal(t, 4.0, pos)
	assert.InDelta(t, 11.0, s.Duration(), 1e-9)

	r, ok := s.Regions().Get(id)
	require.True(t, ok)
	assert.InDelta(t, 4.0, r.Start, 1e-9)
	assert.InDelta(t, 7.0, r.End, 1e-9)
	assert.Equal(t, 2, s.Buffer().NumChannels())
	assert.Equal(t, 8000, s.Buffer().SampleRate)
}

func TestSession_ReplaceRegionBadBlob(t *testing.T) {
	s := loaded(t, 4)
	id, err := s.Split(2)
	require.NoError(t, err)
	before := s.Buffer()

	_, err = s.ReplaceRegion(context.Background(), id, []byte("nope"))
	require.ErrorIs(t, err, codec.ErrDecodeFailure)
	assert.Same(t, before, s.Buffer())
	assert.False(t, s.CanUndo())
}

func TestSession_AppendToEmpty(t *testing.T) {
	s := NewSession()

	pos := s.Append(audiotest.Constant(8000, 1, 1.5, 0.5))
	assert.InDelta(t, 1.5, pos, 1e-9)
	assert.InDelta(t, 1.5, s.Duration(), 1e-9)
	assert.False(t, s.CanUndo(), "nothing to go back to")

	pos = s.Append(audiotest.Constant(8000, 1, 0.5, 0.5))
	assert.InDelta(t, 2.0, pos, 1e-9)
	assert.True(t, s.CanUndo())
}

func TestSession_NoopEditKeepsSnapshot(t *testing.T) {
	s := loaded(t, 4)
	s.DeleteRange(1, 2)
	require.True(t, s.CanUndo())

	s.DeleteRange(2, 2)
	require.True(t, s.Undo())
	assert.InDelta(t, 4.0, s.Duration(), 1e-9)
}

func TestSession_OverwriteRepositionsRegions(t *testing.T) {
	s := loaded(t, 10)
	tail, err := s.Split(5)
	require.NoError(t, err)

	pos := s.Overwrite(audiotest.Constant(8000, 1, 2, 0.1), 2, 3)
	assert.InDelta(t, 4.0, pos, 1e-9)

	r, _ := s.Regions().Get(tail)
	assert.InDelta(t, 6.0, r.Start, 1e-9)
	assert.InDelta(t, 11.0, r.End, 1e-9)
}

func TestSession_RegionsDocument(t *testing.T) {
	s := loaded(t, 10)
	_, err := s.Split(3.333333333)
	require.NoError(t, err)

	data, err := s.RegionsJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"start":3.33333`)

	other := loaded(t, 10)
	require.NoError(t, other.LoadRegions(data))
	assert.Equal(t, 2, other.Regions().Len())
	assert.Equal(t, region.DefaultParams(), other.Params())

	assert.ErrorIs(t, other.SetParams(region.Params{}), region.ErrInvalidParams)
}

func TestSession_RemoveRegionUsesPlayhead(t *testing.T) {
	s := loaded(t, 10)
	_, err := s.Split(4)
	require.NoError(t, err)
	tail, err := s.Split(7)
	require.NoError(t, err)
	middle, _ := s.Regions().Prev(tail)

	s.Transport().Goto(4.1)
	require.NoError(t, s.RemoveRegion(middle))

	first, _ := s.Regions().First()
	r, _ := s.Regions().Get(first)
	assert.Equal(t, 7.0, r.End, "merged backwards into the previous region")
}

func TestSession_ExportRegion(t *testing.T) {
	s := loaded(t, 4)
	id, err := s.Split(1)
	require.NoError(t, err)

	blob, err := s.ExportRegion(id, wav.PCM16)
	require.NoError(t, err)
	assert.Len(t, blob, wav.HeaderSize+3*8000*2*2)

	full, err := s.Export(wav.Float32)
	require.NoError(t, err)
	assert.Len(t, full, wav.HeaderSize+4*8000*2*4)

	out := new(bytes.Buffer)
	require.NoError(t, s.ExportTranscription(out))
	assert.Equal(t, wav.HeaderSize+4*codec.TranscriptionRate*2, out.Len())
}

func TestSession_PlayRegionOnce(t *testing.T) {
	s := loaded(t, 10)
	_, err := s.Split(5)
	require.NoError(t, err)

	tr := s.Transport()
	tr.Goto(2)
	tr.PlayRegionOnce(true)
	require.Equal(t, transport.PlayingRegionOnly, tr.TogglePlay())

	tr.Tick(5.02)
	assert.Equal(t, transport.Stopped, tr.State())
	assert.Equal(t, 5.0, tr.Position())
}

func TestSession_Logs(t *testing.T) {
	logs := new(bytes.Buffer)
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := NewSession(WithLogger(logger))
	s.LoadBuffer(audiotest.Silence(8000, 1, 1))
	s.DeleteRange(0.2, 0.4)

	assert.Contains(t, logs.String(), `"msg":"media loaded"`)
	assert.Contains(t, logs.String(), `"msg":"edit applied"`)
	assert.Contains(t, logs.String(), `"kind":"delete"`)
}
