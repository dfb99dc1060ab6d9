// SPDX-License-Identifier: EPL-2.0

package codec

import "bytes"

// Format keys used in the decoder registry.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatVorbis = "ogg"
	FormatMP3    = "mp3"
)

// Sniff identifies the container of blob from its leading bytes and
// returns a registry key, or "" when nothing matches.
func Sniff(blob []byte) string {
	switch {
	case len(blob) >= 12 && bytes.Equal(blob[:4], []byte("RIFF")) && bytes.Equal(blob[8:12], []byte("WAVE")):
		return FormatWAV
	case len(blob) >= 12 && bytes.Equal(blob[:4], []byte("FORM")) &&
		(bytes.Equal(blob[8:12], []byte("AIFF")) || bytes.Equal(blob[8:12], []byte("AIFC"))):
		return FormatAIFF
	case bytes.HasPrefix(blob, []byte("OggS")):
		return FormatVorbis
	case bytes.HasPrefix(blob, []byte("ID3")):
		return FormatMP3
	case len(blob) >= 2 && blob[0] == 0xFF && blob[1]&0xE0 == 0xE0:
		// MPEG frame sync
		return FormatMP3
	}

	return ""
}
