// SPDX-License-Identifier: EPL-2.0

// Package edit splices sample buffers.
//
// Every function returns a new buffer and never touches its inputs.
// Boundaries in seconds are snapped to milliseconds and then truncated to a
// frame index, so repeated edits do not drift. Material at a different
// sample rate is resampled to the target buffer first.
package edit
