// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files. The
// decoder always yields interleaved stereo, 16-bit samples converted to
// float32 in [-1.0, 1.0].
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrNotMP3File)
//	}
//	buf, err := audio.ReadAll(src)
package mp3
