// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3File is wrapped around any go-mp3 header failure.
var ErrNotMP3File = errors.New("not an MP3 file")
