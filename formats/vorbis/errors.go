// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotVorbisFile is wrapped around any oggvorbis header failure.
var ErrNotVorbisFile = errors.New("not an Ogg Vorbis file")
