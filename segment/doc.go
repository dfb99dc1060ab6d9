// SPDX-License-Identifier: EPL-2.0

// Package segment proposes regions from silence in a sample buffer.
//
// The buffer is reduced to a peak array, silent runs long enough to matter
// become region breaks, and the result is optionally reconciled with an
// externally supplied verse partition:
//
//	spans := segment.Segment(buf, region.DefaultParams(), verses, cache)
package segment
