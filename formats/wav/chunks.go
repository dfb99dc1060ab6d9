// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
)

const (
	formatPCM   = 1
	formatFloat = 3
)

// fmtChunk is the part of the "fmt " chunk the decoder needs.
type fmtChunk struct {
	audioFormat   uint16
	channels      int
	sampleRate    int
	bitsPerSample int
}

// layout walks the RIFF chunks of a WAV file and returns the format and the
// byte range of the data chunk. Unknown chunks are skipped, honouring the
// odd-size padding byte.
func layout(data []byte) (fmtChunk, []byte, error) {
	var fc fmtChunk

	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return fc, nil, ErrNotWavFile
	}

	haveFmt := false
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return fc, nil, ErrUnsupportedWavLayout
			}
			fc = fmtChunk{
				audioFormat:   binary.LittleEndian.Uint16(data[body : body+2]),
				channels:      int(binary.LittleEndian.Uint16(data[body+2 : body+4])),
				sampleRate:    int(binary.LittleEndian.Uint32(data[body+4 : body+8])),
				bitsPerSample: int(binary.LittleEndian.Uint16(data[body+14 : body+16])),
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return fc, nil, ErrUnsupportedWavLayout
			}
			// Truncated recordings are common; take what is there.
			end := min(body+size, len(data))
			return fc, data[body:end], nil
		}

		pos = body + size + size%2
	}

	if !haveFmt {
		return fc, nil, ErrUnsupportedWavLayout
	}

	return fc, nil, ErrUnsupportedWavChunks
}
