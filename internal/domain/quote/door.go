package quote

import (
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// DoorInput is a standalone door order.
type DoorInput struct {
	Type   catalog.DoorType `json:"type" validate:"required"`
	Width  float64          `json:"width" validate:"gte=0.5"`
	Height float64          `json:"height" validate:"gte=0.5"`

	// Leaves only applies to vaiven doors, which take 1 or 2.
	Leaves int `json:"leaves"`
}

// DefaultDoorInput is the configuration the door form opens with.
func DefaultDoorInput() DoorInput {
	return DoorInput{Type: catalog.DoorBatiente, Width: 1, Height: 2, Leaves: 1}
}

// DoorQuote is the standalone door breakdown.
type DoorQuote struct {
	Input     DoorInput
	Area      decimal.Decimal
	RatePerM2 valueobject.Money
	Door      valueobject.Money
	Totals
}

// Product implements Quote.
func (q DoorQuote) Product() Product { return ProductDoor }

// Summary implements Quote.
func (q DoorQuote) Summary() Totals { return q.Totals }

// Lines implements Quote.
func (q DoorQuote) Lines() []Line {
	return []Line{{Code: "door", Label: "Puerta", Amount: q.Door}}
}

// Door prices a door by its face area and the per-m² rate of its type.
func Door(cat *catalog.Catalog, in DoorInput) DoorQuote {
	area := decimal.NewFromFloat(valueobject.Measure(in.Width)).
		Mul(decimal.NewFromFloat(valueobject.Measure(in.Height)))
	rate := cat.Money(cat.DoorRatePerM2(in.Type))
	door := rate.Mul(area)
	return DoorQuote{
		Input:     in,
		Area:      area,
		RatePerM2: rate,
		Door:      door,
		Totals:    withTax(cat, door),
	}
}
