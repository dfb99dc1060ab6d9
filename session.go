// SPDX-License-Identifier: EPL-2.0

package audregion

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/codec"
	"github.com/ik5/audregion/edit"
	"github.com/ik5/audregion/formats/wav"
	"github.com/ik5/audregion/region"
	"github.com/ik5/audregion/segment"
	"github.com/ik5/audregion/transport"
	"github.com/ik5/audregion/undo"
)

// Session owns everything tied to one open media item: the decoded buffer,
// its regions, the peak cache, the undo snapshot and the transport.
//
// A Session is not safe for concurrent use. Only decoding suspends; every
// other operation is synchronous.
type Session struct {
	log    *slog.Logger
	codec  *codec.Codec
	params region.Params

	buf       *audio.SampleBuffer
	store     *region.Store
	peaks     segment.PeakCache
	undo      undo.Manager
	transport *transport.Transport
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	log    *slog.Logger
	codec  *codec.Codec
	params region.Params
	mode   region.Mode
	loop   bool
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) { o.log = l }
}

// WithCodec replaces the bundled codec.
func WithCodec(c *codec.Codec) Option {
	return func(o *sessionOptions) { o.codec = c }
}

// WithParams sets the segmentation parameters.
func WithParams(p region.Params) Option {
	return func(o *sessionOptions) { o.params = p }
}

// WithMode selects multi or single region mode.
func WithMode(m region.Mode) Option {
	return func(o *sessionOptions) { o.mode = m }
}

// WithLoop makes regions loop in region-only playback.
func WithLoop(loop bool) Option {
	return func(o *sessionOptions) { o.loop = loop }
}

// NewSession returns a session with no media loaded.
func NewSession(opts ...Option) *Session {
	o := sessionOptions{
		log:    slog.New(slog.DiscardHandler),
		params: region.DefaultParams(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = codec.New()
	}

	s := &Session{
		log:    o.log,
		codec:  o.codec,
		params: o.params,
		store:  region.NewStore(0, region.WithMode(o.mode), region.WithLoop(o.loop)),
	}
	s.transport = transport.New(s.store)
	s.store.Subscribe(func(c region.Change) {
		s.log.Debug("regions changed",
			"kind", c.Kind.String(), "origin", c.Origin.String(), "regions", c.Count)
	})

	return s
}

// Buffer returns the current buffer, nil before the first load.
func (s *Session) Buffer() *audio.SampleBuffer { return s.buf }

// Regions returns the region store.
func (s *Session) Regions() *region.Store { return s.store }

// Transport returns the playback state machine.
func (s *Session) Transport() *transport.Transport { return s.transport }

// Params returns the segmentation parameters.
func (s *Session) Params() region.Params { return s.params }

// SetParams validates and replaces the segmentation parameters.
func (s *Session) SetParams(p region.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p

	return nil
}

// Duration of the current buffer in seconds.
func (s *Session) Duration() float64 { return s.buf.Duration() }

// Load decodes blob and makes it the current buffer. Regions are cleared.
// On failure the previous buffer and regions are kept.
func (s *Session) Load(ctx context.Context, blob []byte) error {
	buf, err := s.codec.Decode(ctx, blob)
	if err != nil {
		s.log.Warn("decode failed", "bytes", len(blob), "error", err)
		return err
	}

	s.LoadBuffer(buf)

	return nil
}

// LoadBuffer makes an already decoded buffer current. Regions and the undo
// snapshot are dropped.
func (s *Session) LoadBuffer(buf *audio.SampleBuffer) {
	s.undo.Discard()
	s.replaceBuffer(buf)
	s.store.Clear(false, region.Auto)
	s.transport.Goto(0)

	s.log.Info("media loaded",
		"duration", buf.Duration(), "channels", buf.NumChannels(), "sample_rate", buf.SampleRate)
}

func (s *Session) replaceBuffer(buf *audio.SampleBuffer) {
	s.buf = buf
	s.peaks.Invalidate()
	s.store.SetDuration(buf.Duration())
}

// LoadRegions restores a saved region document. Its parameters become the
// session parameters.
func (s *Session) LoadRegions(data []byte) error {
	doc, err := region.ParseDocument(data)
	if err != nil {
		return err
	}

	if err := s.store.Load(doc.Regions, region.Auto); err != nil {
		return fmt.Errorf("loading regions: %w", err)
	}
	s.params = doc.Params

	return nil
}

// RegionsJSON serializes the regions with the session parameters.
func (s *Session) RegionsJSON() ([]byte, error) {
	return region.NewDocument(s.store, s.params).Marshal()
}

// AutoSegment replaces the regions with ones detected from silence,
// reconciled with verses when given. Markers are kept. It returns the new
// region count. When the detected set cannot be stored, for instance more
// than one region in single mode, the error is returned and the previous
// regions are kept.
func (s *Session) AutoSegment(verses []region.Span) (int, error) {
	spans := segment.Segment(s.buf, s.params, verses, &s.peaks)
	for _, m := range s.store.Markers() {
		spans = append(spans, m.Span())
	}

	if len(spans) == 0 {
		s.store.Clear(true, region.Auto)
	} else if err := s.store.Load(spans, region.Auto); err != nil {
		s.log.Warn("detected regions rejected", "regions", len(spans), "error", err)
		return s.store.Len(), fmt.Errorf("storing detected regions: %w", err)
	}

	s.log.Info("auto segmented",
		"regions", s.store.Len(), "verses", len(verses), "duration", s.Duration())

	return s.store.Len(), nil
}

// Split adds a region boundary at pos.
func (s *Session) Split(pos float64) (region.ID, error) {
	return s.store.Add(pos, region.User)
}

// RemoveRegion merges a region into a neighbour, picked from the playhead
// position. The audio is untouched.
func (s *Session) RemoveRegion(id region.ID) error {
	return s.store.RemoveAt(id, s.transport.Position(), region.User)
}

// apply commits an edit result: snapshot, buffer swap, region repair and
// playhead move. A no-op keeps everything, including the previous snapshot.
func (s *Session) apply(res edit.Result) float64 {
	if res.NoOp {
		s.log.Debug("edit skipped", "kind", res.Kind.String())
		return res.Position
	}

	if s.buf != nil {
		s.undo.Snapshot(s.buf)
	}
	s.replaceBuffer(res.Buffer)
	s.store.ApplyEdit(res.Start, res.End, res.Inserted, region.Auto)
	s.store.SetDuration(res.Buffer.Duration())
	s.transport.Goto(res.Position)

	s.log.Debug("edit applied",
		"kind", res.Kind.String(), "start", res.Start, "end", res.End,
		"inserted", res.Inserted, "position", res.Position, "duration", res.Buffer.Duration())

	return res.Position
}

// Append adds a recorded take at the end and returns the new playhead.
func (s *Session) Append(take *audio.SampleBuffer) float64 {
	return s.apply(edit.AppendTo(s.buf, take))
}

// Overwrite replaces [start, end) with a recorded take and returns the new
// playhead.
func (s *Session) Overwrite(take *audio.SampleBuffer, start, end float64) float64 {
	return s.apply(edit.OverwriteRange(s.buf, take, start, end))
}

// DeleteRange cuts [start, end) out of the buffer and returns the new
// playhead.
func (s *Session) DeleteRange(start, end float64) float64 {
	return s.apply(edit.DeleteRange(s.buf, start, end))
}

// DeleteRegion cuts the audio under a region. The region disappears with
// it.
func (s *Session) DeleteRegion(id region.ID) (float64, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return 0, region.ErrNotFound
	}

	return s.DeleteRange(r.Start, r.End), nil
}

// ReplaceRegion swaps the audio under a region for externally processed
// audio. A blob that fails to decode leaves the session untouched.
func (s *Session) ReplaceRegion(ctx context.Context, id region.ID, blob []byte) (float64, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return 0, region.ErrNotFound
	}

	processed, err := s.codec.Decode(ctx, blob)
	if err != nil {
		s.log.Warn("processed audio rejected", "region", id.String(), "error", err)
		return s.transport.Position(), err
	}

	return s.apply(edit.ReplaceRange(s.buf, processed, r.Start, r.End)), nil
}

// Undo restores the buffer from before the last edit and clears the
// regions. It reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	buf, ok := s.undo.Undo()
	if !ok {
		return false
	}

	s.replaceBuffer(buf)
	s.store.Clear(false, region.Auto)
	s.transport.Goto(0)
	s.log.Info("edit undone", "duration", buf.Duration())

	return true
}

// CanUndo reports whether an undo snapshot exists.
func (s *Session) CanUndo() bool { return s.undo.Has() }

// Export encodes the whole buffer.
func (s *Session) Export(format wav.Format) ([]byte, error) {
	return codec.Encode(s.buf, format)
}

// ExportRegion encodes the audio under one region.
func (s *Session) ExportRegion(id region.ID, format wav.Format) ([]byte, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return nil, region.ErrNotFound
	}

	return codec.EncodeRange(s.buf, r.Start, r.End, format)
}

// ExportTranscription writes the buffer as mono 16 kHz PCM16 for a speech
// recognizer.
func (s *Session) ExportTranscription(w io.Writer) error {
	return codec.WriteTranscription(w, s.buf)
}
