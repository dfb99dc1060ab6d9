// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/internal/audiotest"
)

func TestDeleteRange_Scenario(t *testing.T) {
	buf := audiotest.Ramp(8000, 2, 20)

	res := DeleteRange(buf, 10, 15)
	require.False(t, res.NoOp)

	assert.InDelta(t, 15.0, res.Buffer.Duration(), 1e-9)
	assert.InDelta(t, 9.97, res.Position, 1e-9)
	assert.Equal(t, 10.0, res.Start)
	assert.Equal(t, 15.0, res.End)
	assert.Zero(t, res.Inserted)

	// samples after the cut moved left
	assert.Equal(t, buf.Channels[1][15*8000], res.Buffer.Channels[1][10*8000])
	assert.Equal(t, 20*8000, buf.FrameCount(), "input untouched")
}

func TestDeleteRange_NudgeClampsAtZero(t *testing.T) {
	res := DeleteRange(audiotest.Ramp(8000, 1, 2), 0.01, 1)
	assert.Equal(t, 0.0, res.Position)
}

func TestDeleteRange_Everything(t *testing.T) {
	res := DeleteRange(audiotest.Ramp(8000, 2, 2), 0, 2)

	require.False(t, res.NoOp)
	assert.True(t, res.Buffer.Empty())
	assert.Equal(t, 2, res.Buffer.NumChannels())
	assert.Equal(t, 8000, res.Buffer.SampleRate)
}

func TestDeleteThenInsertKeepsFrameCount(t *testing.T) {
	buf := audiotest.Ramp(44100, 2, 5)
	cut := DeleteRange(buf, 1.2345, 2.5)

	gap := cut.End - cut.Start
	filler := audiotest.Silence(44100, 2, gap)

	res := OverwriteRange(cut.Buffer, filler, cut.Start, cut.Start)
	assert.Equal(t, buf.FrameCount(), res.Buffer.FrameCount())
}

func TestOverwriteRange(t *testing.T) {
	buf := audiotest.Ramp(1000, 2, 10)
	take := audiotest.Constant(1000, 1, 2, 0.5)

	res := OverwriteRange(buf, take, 3, 4)
	require.False(t, res.NoOp)

	assert.Equal(t, 11000, res.Buffer.FrameCount())
	assert.InDelta(t, 5.0, res.Position, 1e-9)
	assert.Equal(t, 2, res.Buffer.NumChannels())

	for c := range 2 {
		assert.Equal(t, buf.Channels[c][2999], res.Buffer.Channels[c][2999])
		assert.Equal(t, float32(0.5), res.Buffer.Channels[c][3000], "mono take broadcast to channel %d", c)
		assert.Equal(t, float32(0.5), res.Buffer.Channels[c][4999])
		assert.Equal(t, buf.Channels[c][4000], res.Buffer.Channels[c][5000])
	}
}

func TestOverwriteRange_SnapsBoundaries(t *testing.T) {
	buf := audiotest.Ramp(44100, 1, 2)

	res := OverwriteRange(buf, nil, 0.9999999, 1.0000001)
	assert.True(t, res.NoOp, "both bounds snap to the same frame")

	res = OverwriteRange(buf, nil, 0.5004, 1.0006)
	require.False(t, res.NoOp)
	assert.Equal(t, 0.5, res.Start)
	assert.InDelta(t, 1.001, res.End, 1.0/44100)
}

func TestOverwriteRange_ResamplesMaterial(t *testing.T) {
	buf := audiotest.Ramp(44100, 1, 2)
	take := audiotest.Constant(16000, 1, 1, 0.25)

	res := OverwriteRange(buf, take, 1, 1)
	assert.Equal(t, 3*44100, res.Buffer.FrameCount())
	assert.InDelta(t, 1.0, res.Inserted, 1e-9)
}

func TestAppendTo(t *testing.T) {
	buf := audiotest.Ramp(8000, 1, 1)
	take := audiotest.Constant(8000, 1, 0.5, 0.5)

	res := AppendTo(buf, take)
	assert.Equal(t, 12000, res.Buffer.FrameCount())
	assert.InDelta(t, 1.5, res.Position, 1e-9)
	assert.Equal(t, 1.0, res.Start)
	assert.Equal(t, 1.0, res.End)
	assert.InDelta(t, 0.5, res.Inserted, 1e-9)
}

func TestAppendTo_EmptyBuffer(t *testing.T) {
	take := audiotest.Constant(8000, 2, 0.5, 0.5)

	res := AppendTo(nil, take)
	require.False(t, res.NoOp)
	assert.Equal(t, 4000, res.Buffer.FrameCount())
	assert.NotSame(t, take, res.Buffer)
	assert.InDelta(t, 0.5, res.Position, 1e-9)
}

func TestReplaceRange(t *testing.T) {
	t.Run("processed material of another length", func(t *testing.T) {
		buf := audiotest.Ramp(1000, 1, 10)
		processed := audiotest.Constant(1000, 1, 3, 0.1)

		res := ReplaceRange(buf, processed, 2, 4)
		assert.Equal(t, 11000, res.Buffer.FrameCount())
		assert.Equal(t, 2.0, res.Position)
		assert.InDelta(t, 3.0, res.Inserted, 1e-9)
		assert.Equal(t, buf.Channels[0][4000], res.Buffer.Channels[0][5000])
	})

	t.Run("wider material widens the buffer", func(t *testing.T) {
		buf := audiotest.Ramp(1000, 1, 4)
		processed := audiotest.Constant(1000, 2, 1, 0.1)

		res := ReplaceRange(buf, processed, 1, 2)
		require.Equal(t, 2, res.Buffer.NumChannels())
		assert.Equal(t, buf.Channels[0][10], res.Buffer.Channels[1][10])
		assert.Equal(t, float32(0.1), res.Buffer.Channels[1][1500])
	})

	t.Run("narrower material is broadcast", func(t *testing.T) {
		buf := audiotest.Ramp(1000, 2, 4)
		processed := audiotest.Constant(1000, 1, 1, 0.1)

		res := ReplaceRange(buf, processed, 1, 2)
		require.Equal(t, 2, res.Buffer.NumChannels())
		assert.Equal(t, float32(0.1), res.Buffer.Channels[1][1500])
		assert.Equal(t, buf.Channels[1][10], res.Buffer.Channels[1][10])
	})
}

func TestEmptyBufferIsNoop(t *testing.T) {
	empty := audio.NewSampleBuffer(8000, 1, 0)
	take := audiotest.Constant(8000, 1, 1, 0.5)

	for _, res := range []Result{
		OverwriteRange(empty, take, 0, 1),
		DeleteRange(empty, 0, 1),
		ReplaceRange(empty, take, 0, 1),
		DeleteRange(nil, 0, 1),
	} {
		assert.True(t, res.NoOp, res.Kind.String())
		assert.Zero(t, res.Position)
	}
}
