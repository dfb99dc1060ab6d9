// SPDX-License-Identifier: EPL-2.0

// Package region keeps the labeled time intervals laid over an audio buffer.
//
// A Store holds spans in a chain ordered by start. Splitting, removing and
// resizing keep the chain free of overlaps, and removal hands the removed
// interval to a neighbour so coverage never develops holes. Markers are
// zero-length regions that sit beside the chain.
//
// Regions are addressed by generational IDs: an ID of a deleted region
// never resolves again. Every mutation is reported to subscribed listeners
// with an Origin so callers can tell user edits from automated ones.
//
// Document is the persisted JSON form:
//
//	{"params":{"silenceThreshold":0.002,"timeThreshold":0.05,"segLenThreshold":0.5},
//	 "regions":[{"start":0,"end":1.5,"label":""}]}
package region
