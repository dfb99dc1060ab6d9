// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/formats/wav"
	"github.com/ik5/audregion/utils"
)

// TranscriptionRate is the sample rate speech recognizers expect.
const TranscriptionRate = 16000

// TranscriptionPCM resamples buf to targetRate, mixes it down to mono and
// converts it to 16-bit PCM.
//
// The pipeline is:
//  1. Resample with cubic interpolation
//  2. Average the channels
//  3. Clamp and scale to int16
func TranscriptionPCM(buf *audio.SampleBuffer, targetRate int) []int16 {
	mono := audio.MixToMono(audio.Resample(buf, targetRate))
	if mono.Empty() {
		return nil
	}

	return utils.PCM16(mono.Channels[0])
}

// WriteTranscription writes buf as a mono 16 kHz PCM16 WAV, the input
// format of the transcription service.
func WriteTranscription(w io.Writer, buf *audio.SampleBuffer) error {
	return wav.WriteWAV16(w, TranscriptionRate, TranscriptionPCM(buf, TranscriptionRate))
}
