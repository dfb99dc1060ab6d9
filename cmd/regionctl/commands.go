// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/ik5/audregion"
	"github.com/ik5/audregion/formats/wav"
	"github.com/ik5/audregion/internal/blobstore"
	"github.com/ik5/audregion/region"
)

type app struct {
	log    *slog.Logger
	store  blobstore.Store
	params region.Params
	stdout io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"segment":    segmentCmd,
	"export":     exportCmd,
	"split":      splitCmd,
	"delete":     deleteCmd,
	"transcribe": transcribeCmd,
}

var errMissingInput = errors.New("-in is required")

// stem drops the extension from key.
func stem(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}

func parseFormat(s string) (wav.Format, error) {
	switch strings.ToLower(s) {
	case "pcm16", "":
		return wav.PCM16, nil
	case "float32":
		return wav.Float32, nil
	default:
		return 0, fmt.Errorf("unknown output format %q", s)
	}
}

func newFlags(name string, a *app) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stdout)

	return fs
}

// open loads the media at key into a fresh session.
func (a *app) open(ctx context.Context, key string) (*audregion.Session, error) {
	blob, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	s := audregion.NewSession(audregion.WithLogger(a.log), audregion.WithParams(a.params))
	if err := s.Load(ctx, blob); err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	return s, nil
}

// regions restores the document at key, or auto segments when key is empty.
func (a *app) regions(ctx context.Context, s *audregion.Session, key string) error {
	if key == "" {
		_, err := s.AutoSegment(nil)
		return err
	}

	data, err := a.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}

	return s.LoadRegions(data)
}

func (a *app) put(ctx context.Context, key string, data []byte) error {
	if err := a.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	a.log.Info("wrote blob", slog.String("key", key), slog.Int("bytes", len(data)))
	fmt.Fprintln(a.stdout, key)

	return nil
}

func segmentCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("segment", a)
	in := fs.String("in", "", "media key")
	versesKey := fs.String("verses", "", "JSON array of verse spans")
	out := fs.String("out", "", "region document key (default <in>.regions.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errMissingInput
	}
	if *out == "" {
		*out = stem(*in) + ".regions.json"
	}

	s, err := a.open(ctx, *in)
	if err != nil {
		return err
	}

	var verses []region.Span
	if *versesKey != "" {
		data, err := a.store.Get(ctx, *versesKey)
		if err != nil {
			return fmt.Errorf("get %s: %w", *versesKey, err)
		}
		if verses, err = region.ParseSpans(data); err != nil {
			return err
		}
	}

	n, err := s.AutoSegment(verses)
	if err != nil {
		return err
	}
	a.log.Info("segmented",
		slog.String("key", *in),
		slog.Int("regions", n),
		slog.Int("verses", len(verses)),
	)

	doc, err := s.RegionsJSON()
	if err != nil {
		return err
	}

	return a.put(ctx, *out, doc)
}

func exportCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("export", a)
	in := fs.String("in", "", "media key")
	format := fs.String("format", "pcm16", "sample format: pcm16 or float32")
	out := fs.String("out", "", "WAV key (default <in>.<format>.wav)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errMissingInput
	}

	f, err := parseFormat(*format)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = stem(*in) + "." + f.String() + ".wav"
	}

	s, err := a.open(ctx, *in)
	if err != nil {
		return err
	}

	blob, err := s.Export(f)
	if err != nil {
		return err
	}

	return a.put(ctx, *out, blob)
}

func splitCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("split", a)
	in := fs.String("in", "", "media key")
	regionsKey := fs.String("regions", "", "region document key (default: auto segment)")
	format := fs.String("format", "pcm16", "sample format: pcm16 or float32")
	prefix := fs.String("prefix", "", "output key prefix (default <in>)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errMissingInput
	}
	if *prefix == "" {
		*prefix = stem(*in)
	}

	f, err := parseFormat(*format)
	if err != nil {
		return err
	}

	s, err := a.open(ctx, *in)
	if err != nil {
		return err
	}
	if err := a.regions(ctx, s, *regionsKey); err != nil {
		return err
	}

	for k, r := range s.Regions().Regions() {
		blob, err := s.ExportRegion(r.ID, f)
		if err != nil {
			return fmt.Errorf("region %d: %w", k+1, err)
		}
		if err := a.put(ctx, fmt.Sprintf("%s-%03d.wav", *prefix, k+1), blob); err != nil {
			return err
		}
	}

	return nil
}

func deleteCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("delete", a)
	in := fs.String("in", "", "media key")
	regionsKey := fs.String("regions", "", "region document key")
	index := fs.Int("region", 0, "1-based index of the region to cut")
	format := fs.String("format", "pcm16", "sample format: pcm16 or float32")
	out := fs.String("out", "", "edited WAV key (default <in>.edited.wav)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errMissingInput
	}
	if *regionsKey == "" {
		return errors.New("-regions is required")
	}
	if *out == "" {
		*out = stem(*in) + ".edited.wav"
	}

	f, err := parseFormat(*format)
	if err != nil {
		return err
	}

	s, err := a.open(ctx, *in)
	if err != nil {
		return err
	}
	if err := a.regions(ctx, s, *regionsKey); err != nil {
		return err
	}

	regions := s.Regions().Regions()
	if *index < 1 || *index > len(regions) {
		return fmt.Errorf("region %d of %d: %w", *index, len(regions), region.ErrNotFound)
	}

	pos, err := s.DeleteRegion(regions[*index-1].ID)
	if err != nil {
		return err
	}
	a.log.Info("region deleted",
		slog.Int("region", *index),
		slog.Float64("playhead", pos),
		slog.Float64("duration", s.Duration()),
	)

	blob, err := s.Export(f)
	if err != nil {
		return err
	}
	if err := a.put(ctx, *out, blob); err != nil {
		return err
	}

	doc, err := s.RegionsJSON()
	if err != nil {
		return err
	}

	return a.put(ctx, stem(*out)+".regions.json", doc)
}

func transcribeCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("transcribe", a)
	in := fs.String("in", "", "media key")
	out := fs.String("out", "", "mono 16 kHz WAV key (default <in>.16k.wav)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errMissingInput
	}
	if *out == "" {
		*out = stem(*in) + ".16k.wav"
	}

	s, err := a.open(ctx, *in)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	if err := s.ExportTranscription(&b); err != nil {
		return err
	}

	return a.put(ctx, *out, b.Bytes())
}
