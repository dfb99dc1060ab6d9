// SPDX-License-Identifier: EPL-2.0

package region

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/ik5/audregion/utils"
)

// savePrecision is the number of decimals boundaries are rounded to on save.
const savePrecision = 5

// Document is the persisted form of a region set together with the
// parameters that produced it.
type Document struct {
	Params  Params `json:"params"`
	Regions []Span `json:"regions"`
}

// NewDocument captures the current spans and markers of s.
func NewDocument(s *Store, p Params) Document {
	return Document{Params: p, Regions: s.Spans()}
}

// Marshal encodes d with boundaries rounded to five decimals.
func (d Document) Marshal() ([]byte, error) {
	out := Document{Params: d.Params, Regions: make([]Span, len(d.Regions))}
	for k, sp := range d.Regions {
		out.Regions[k] = Span{
			Start: utils.RoundTo(sp.Start, savePrecision),
			End:   utils.RoundTo(sp.End, savePrecision),
			Label: sp.Label,
		}
	}

	return json.Marshal(out)
}

// ParseDocument decodes a saved document. Missing parameters take their
// defaults, and regions come back sorted by start.
func ParseDocument(data []byte) (Document, error) {
	d := Document{Params: DefaultParams()}
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parsing region document: %w", err)
	}

	if err := d.Params.Validate(); err != nil {
		return Document{}, err
	}

	slices.SortStableFunc(d.Regions, func(a, b Span) int { return cmp.Compare(a.Start, b.Start) })

	return d, nil
}

// ParseSpans decodes a bare JSON array of spans, the shape external verse
// sources deliver. The result is sorted by start.
func ParseSpans(data []byte) ([]Span, error) {
	var spans []Span
	if err := json.Unmarshal(data, &spans); err != nil {
		return nil, fmt.Errorf("parsing spans: %w", err)
	}

	for _, sp := range spans {
		if sp.End < sp.Start {
			return nil, fmt.Errorf("span [%g, %g]: %w", sp.Start, sp.End, ErrInvalidBounds)
		}
	}
	slices.SortStableFunc(spans, func(a, b Span) int { return cmp.Compare(a.Start, b.Start) })

	return spans, nil
}
