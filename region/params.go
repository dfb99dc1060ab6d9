// SPDX-License-Identifier: EPL-2.0

package region

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default segmentation parameters.
const (
	DefaultSilenceThreshold = 0.002
	DefaultTimeThreshold    = 0.05
	DefaultSegLenThreshold  = 0.5
)

// Params tune automatic segmentation and travel with the regions when they
// are saved.
type Params struct {
	// SilenceThreshold is the normalized peak level at or below which a
	// block counts as silent.
	SilenceThreshold float64 `json:"silenceThreshold" validate:"gte=0,lte=1"`
	// TimeThreshold is the shortest silence, in seconds, that may split.
	TimeThreshold float64 `json:"timeThreshold" validate:"gt=0"`
	// SegLenThreshold is the shortest region, in seconds, worth keeping.
	SegLenThreshold float64 `json:"segLenThreshold" validate:"gte=0"`
}

// DefaultParams returns the default segmentation parameters.
func DefaultParams() Params {
	return Params{
		SilenceThreshold: DefaultSilenceThreshold,
		TimeThreshold:    DefaultTimeThreshold,
		SegLenThreshold:  DefaultSegLenThreshold,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the parameter ranges. Failures wrap ErrInvalidParams.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	return nil
}
