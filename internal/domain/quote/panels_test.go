package quote

import (
	"testing"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
)

func TestEPSRoof(t *testing.T) {
	cat := testCatalog(t)

	q := EPSRoof(cat, EPSRoofInput{Quantity: 10})

	assert.Equal(t, 3.48, q.PanelArea.InexactFloat64())
	assert.Equal(t, 870.0, q.Subtotal.Float64())
	assert.Equal(t, 156.6, q.Tax.Float64())
	assert.Equal(t, 1026.6, q.Total.Float64())
}

func TestEPSRoof_InvalidQuantityDegradesToZero(t *testing.T) {
	cat := testCatalog(t)

	for _, n := range []int{0, -3} {
		q := EPSRoof(cat, EPSRoofInput{Quantity: n})
		assert.True(t, q.Total.IsZero())
	}
}

func TestEPSWall(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name      string
		in        EPSWallInput
		wantSub   float64
		wantTotal float64
	}{
		{"100mm", EPSWallInput{Thickness: catalog.EPSThickness100, Length: 10}, 290, 342.2},
		{"200mm", EPSWallInput{Thickness: catalog.EPSThickness200, Length: 10}, 406, 479.08},
		{"zero length", EPSWallInput{Thickness: catalog.EPSThickness100, Length: 0}, 0, 0},
		{"negative length", EPSWallInput{Thickness: catalog.EPSThickness200, Length: -2}, 0, 0},
		{"unmapped thickness", EPSWallInput{Thickness: "300", Length: 4}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := EPSWall(cat, tt.in)
			assert.InDelta(t, tt.wantSub, q.Subtotal.Float64(), 1e-9)
			assert.InDelta(t, tt.wantTotal, q.Total.Float64(), 1e-9)
		})
	}
}

func TestPUR_BackComputesTax(t *testing.T) {
	cat := testCatalog(t)

	for _, th := range []catalog.PURThickness{catalog.PURThickness100, catalog.PURThickness150} {
		t.Run(string(th), func(t *testing.T) {
			q := PUR(cat, PURInput{Thickness: th, Quantity: 3})

			assert.True(t, q.Subtotal.Add(q.Tax).Amount.Equal(q.TotalWithTax.Amount))
			assert.InDelta(t, q.TotalWithTax.Float64()/1.18, q.Subtotal.Float64(), 1e-9)
			assert.True(t, q.Total.Amount.Equal(q.TotalWithTax.Amount))
		})
	}
}

func TestPUR_UnitPrices(t *testing.T) {
	cat := testCatalog(t)

	assert.Equal(t, 1300.0, PUR(cat, PURInput{Thickness: catalog.PURThickness100, Quantity: 2}).TotalWithTax.Float64())
	assert.Equal(t, 1500.0, PUR(cat, PURInput{Thickness: catalog.PURThickness150, Quantity: 2}).TotalWithTax.Float64())
	assert.True(t, PUR(cat, PURInput{Thickness: catalog.PURThickness150}).Total.IsZero())
}

func TestDoor(t *testing.T) {
	cat := testCatalog(t)

	q := Door(cat, DoorInput{Type: catalog.DoorVaiven, Width: 1, Height: 2, Leaves: 2})

	assert.Equal(t, 2.0, q.Area.InexactFloat64())
	assert.Equal(t, 1200.0, q.Subtotal.Float64())
	assert.Equal(t, 1416.0, q.Total.Float64())

	assert.True(t, Door(cat, DoorInput{Type: catalog.DoorBatiente}).Total.IsZero())
}

func TestParseProduct(t *testing.T) {
	p, err := ParseProduct("cameras")
	assert.NoError(t, err)
	assert.Equal(t, ProductCabin, p)

	p, err = ParseProduct(" EPS-Wall ")
	assert.NoError(t, err)
	assert.Equal(t, ProductEPSWall, p)

	_, err = ParseProduct("windows")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}
