package quote

import (
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// EPSRoofInput is an order of fixed-size EPS roof panels.
type EPSRoofInput struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

// EPSRoofQuote is the EPS roof panel breakdown.
type EPSRoofQuote struct {
	Input     EPSRoofInput
	PanelArea decimal.Decimal
	Panels    valueobject.Money
	Totals
}

// Product implements Quote.
func (q EPSRoofQuote) Product() Product { return ProductEPSRoof }

// Summary implements Quote.
func (q EPSRoofQuote) Summary() Totals { return q.Totals }

// Lines implements Quote.
func (q EPSRoofQuote) Lines() []Line {
	return []Line{{Code: "panels", Label: "Paneles EPS techo", Amount: q.Panels}}
}

// EPSRoof prices roof panels: quantity x panel area x price per m².
func EPSRoof(cat *catalog.Catalog, in EPSRoofInput) EPSRoofQuote {
	length, width := cat.RoofPanelSize()
	area := length.Mul(width)
	panels := cat.Money(count(in.Quantity).Mul(area).Mul(cat.RoofPanelPerM2()))
	return EPSRoofQuote{
		Input:     in,
		PanelArea: area,
		Panels:    panels,
		Totals:    withTax(cat, panels),
	}
}

// EPSWallInput is a run of EPS wall panels.
type EPSWallInput struct {
	Thickness catalog.EPSThickness `json:"thickness" validate:"required"`
	Length    float64              `json:"length" validate:"gte=0.5"`
}

// EPSWallQuote is the EPS wall panel breakdown.
type EPSWallQuote struct {
	Input      EPSWallInput
	Area       decimal.Decimal
	PricePerM2 valueobject.Money
	Panels     valueobject.Money
	Totals
}

// Product implements Quote.
func (q EPSWallQuote) Product() Product { return ProductEPSWall }

// Summary implements Quote.
func (q EPSWallQuote) Summary() Totals { return q.Totals }

// Lines implements Quote.
func (q EPSWallQuote) Lines() []Line {
	return []Line{{Code: "panels", Label: "Paneles EPS pared", Amount: q.Panels}}
}

// EPSWall prices a wall run: length x fixed panel width x the rate for the
// chosen thickness.
func EPSWall(cat *catalog.Catalog, in EPSWallInput) EPSWallQuote {
	length := decimal.NewFromFloat(valueobject.Measure(in.Length))
	area := length.Mul(cat.WallPanelWidth())
	rate := cat.Money(cat.WallPanelPerM2(in.Thickness))
	panels := rate.Mul(area)
	return EPSWallQuote{
		Input:      in,
		Area:       area,
		PricePerM2: rate,
		Panels:     panels,
		Totals:     withTax(cat, panels),
	}
}

// PURInput is an order of PUR panels.
type PURInput struct {
	Thickness catalog.PURThickness `json:"thickness" validate:"required"`
	Quantity  int                  `json:"quantity" validate:"gte=1"`
}

// PURQuote is the PUR panel breakdown. PUR is listed tax-inclusive, so
// subtotal and tax are derived from the gross total.
type PURQuote struct {
	Input        PURInput
	UnitWithTax  valueobject.Money
	TotalWithTax valueobject.Money
	Totals
}

// Product implements Quote.
func (q PURQuote) Product() Product { return ProductPUR }

// Summary implements Quote.
func (q PURQuote) Summary() Totals { return q.Totals }

// Lines implements Quote.
func (q PURQuote) Lines() []Line {
	return []Line{{Code: "panels", Label: "Paneles PUR", Amount: q.Subtotal}}
}

// PUR prices PUR panels from the tax-inclusive unit price.
func PUR(cat *catalog.Catalog, in PURInput) PURQuote {
	unit := cat.Money(cat.PURUnitWithTax(in.Thickness))
	gross := unit.Mul(count(in.Quantity))
	return PURQuote{
		Input:        in,
		UnitWithTax:  unit,
		TotalWithTax: gross,
		Totals:       fromGross(cat, gross),
	}
}

// DefaultEPSRoofInput is the configuration the roof panel form opens with.
func DefaultEPSRoofInput() EPSRoofInput { return EPSRoofInput{Quantity: 1} }

// DefaultEPSWallInput is the configuration the wall panel form opens with.
func DefaultEPSWallInput() EPSWallInput {
	return EPSWallInput{Thickness: catalog.EPSThickness100, Length: 1}
}

// DefaultPURInput is the configuration the PUR panel form opens with.
func DefaultPURInput() PURInput {
	return PURInput{Thickness: catalog.PURThickness100, Quantity: 1}
}
