// Package valueobject contains value objects that represent concepts without identity.
package valueobject

import (
	"math"

	"github.com/shopspring/decimal"
)

// Dimensions represents the physical dimensions of a cold room.
// All measurements are in meters; the 0.5 m minimum is enforced by the
// validate tags when the form is submitted.
type Dimensions struct {
	// Width in meters.
	Width float64 `json:"width" validate:"gte=0.5"`

	// Height in meters.
	Height float64 `json:"height" validate:"gte=0.5"`

	// Length in meters.
	Length float64 `json:"length" validate:"gte=0.5"`
}

// NewDimensions creates a new Dimensions value object.
// Non-finite or non-positive measures are stored as zero.
//
// Parameters:
//   - width: Width in meters
//   - height: Height in meters
//   - length: Length in meters
//
// Returns:
//   - Dimensions: new Dimensions value object
func NewDimensions(width, height, length float64) Dimensions {
	return Dimensions{
		Width:  Measure(width),
		Height: Measure(height),
		Length: Measure(length),
	}
}

// Measure coerces a raw measure to a usable value: NaN, infinities and
// non-positive numbers become zero.
func Measure(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

// Sanitized returns a copy with every measure coerced through Measure.
func (d Dimensions) Sanitized() Dimensions {
	return NewDimensions(d.Width, d.Height, d.Length)
}

// Complete reports whether every measure is positive.
func (d Dimensions) Complete() bool {
	s := d.Sanitized()
	return s.Width > 0 && s.Height > 0 && s.Length > 0
}

// Surface calculates the floor footprint (width x length) in m².
//
// Returns:
//   - decimal.Decimal: surface in m², zero if any measure is missing
func (d Dimensions) Surface() decimal.Decimal {
	if !d.Complete() {
		return decimal.Zero
	}
	return decimal.NewFromFloat(d.Width).Mul(decimal.NewFromFloat(d.Length))
}

// Volume calculates the inner volume in m³.
//
// Returns:
//   - decimal.Decimal: volume in m³, zero if any measure is missing
func (d Dimensions) Volume() decimal.Decimal {
	if !d.Complete() {
		return decimal.Zero
	}
	return d.Surface().Mul(decimal.NewFromFloat(d.Height))
}
