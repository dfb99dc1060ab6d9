// SPDX-License-Identifier: EPL-2.0

// Package undo keeps a single pre-edit copy of a sample buffer.
package undo

import "github.com/ik5/audregion/audio"

// Manager holds at most one snapshot. Taking a new snapshot discards the
// previous one.
type Manager struct {
	snapshot *audio.SampleBuffer
}

// Snapshot stores a deep copy of buf. Call it right before a destructive
// edit.
func (m *Manager) Snapshot(buf *audio.SampleBuffer) {
	m.snapshot = buf.Clone()
}

// Has reports whether a snapshot is available.
func (m *Manager) Has() bool { return m.snapshot != nil }

// Undo hands back the snapshot and forgets it. ok is false when there is
// nothing to restore.
func (m *Manager) Undo() (buf *audio.SampleBuffer, ok bool) {
	if m.snapshot == nil {
		return nil, false
	}

	buf, m.snapshot = m.snapshot, nil

	return buf, true
}

// Discard forgets the snapshot, e.g. when another media item is loaded.
func (m *Manager) Discard() { m.snapshot = nil }
