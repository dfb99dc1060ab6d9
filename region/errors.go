// SPDX-License-Identifier: EPL-2.0

package region

import "errors"

var (
	// ErrNotFound is returned for an ID that is stale or was never issued.
	ErrNotFound = errors.New("region not found")

	// ErrInvalidBounds is returned when start >= end, or a bound lies outside
	// the timeline. The store is left unchanged.
	ErrInvalidBounds = errors.New("invalid region bounds")

	// ErrBoundaryConflict describes a resize that would invert a neighbour.
	// It is never returned: the resize is clamped at the neighbour's far
	// boundary instead. It is exported so callers can name the condition.
	ErrBoundaryConflict = errors.New("region boundary conflicts with neighbour")

	// ErrOverlap is returned when a loaded or added span intersects another.
	ErrOverlap = errors.New("regions overlap")

	// ErrSingleMode is returned by operations that need more than one region
	// while the store is in single region mode.
	ErrSingleMode = errors.New("store is in single region mode")

	// ErrNoDuration is returned when a split is requested before the store
	// knows the buffer duration.
	ErrNoDuration = errors.New("store has no duration")

	// ErrInvalidParams wraps parameter validation failures.
	ErrInvalidParams = errors.New("invalid region params")
)
