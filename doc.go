// SPDX-License-Identifier: EPL-2.0

// Package audregion is a region and segmentation engine for recorded
// speech.
//
// A Session holds one decoded media item. Regions are labeled intervals
// over it that can be split, merged, resized and looped, proposed
// automatically from silence and reconciled with externally supplied verse
// timings. The audio itself can be edited without losing the region layout:
// appending a take, overwriting a range, deleting a region, or replacing a
// region with processed audio all move the surrounding region boundaries
// along with the samples.
//
// # Quick Start
//
//	s := audregion.NewSession(audregion.WithLogger(logger))
//	if err := s.Load(ctx, blob); err != nil {
//		return err
//	}
//
//	if _, err := s.AutoSegment(verses); err != nil {
//		return err
//	}
//	doc, _ := s.RegionsJSON()
//
// # Edits and Undo
//
// Every destructive edit keeps a copy of the previous buffer. Undo restores
// it and clears the regions; only one level is kept.
//
//	id, _ := s.Regions().At(12.5)
//	pos, _ := s.DeleteRegion(id)
//	s.Undo()
//
// # Packages
//
//   - audio: sample buffers, resampling, the decoder registry
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//   - codec: blob sniffing, decode and WAV encode
//   - region: the region store and its JSON document
//   - segment: silence detection and verse reconciliation
//   - edit: sample-accurate splicing
//   - undo, transport: snapshot and playback state
package audregion
