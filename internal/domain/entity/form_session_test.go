package entity

import (
	"testing"
	"time"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestNewFormSession_Defaults(t *testing.T) {
	s := NewFormSession(quote.ProductCabin, t0)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, s.Version)
	assert.Equal(t, 2.0, s.Cabin.Dimensions.Width)
	assert.Equal(t, 2.5, s.Cabin.Dimensions.Height)
	assert.Equal(t, 2.0, s.Cabin.Dimensions.Length)
	assert.Equal(t, catalog.MaterialEPS, s.Cabin.Material)
	assert.Equal(t, catalog.DoorBatiente, s.Cabin.Door)
	assert.Equal(t, catalog.Motor2HP, s.Cabin.Motor)
	assert.Equal(t, catalog.InstallPickup, s.Cabin.Installation)
	assert.Equal(t, catalog.LocationLima, s.Cabin.Location)
}

func TestFormSession_ApplyRecomputes(t *testing.T) {
	cat := catalog.MustNew(catalog.DefaultPrices())
	s := NewFormSession(quote.ProductCabin, t0)

	before := s.Evaluate(cat).Summary().Total
	assert.Equal(t, 4130.0, before.Float64())

	later := t0.Add(time.Minute)
	require.NoError(t, s.Apply([]Change{{Field: "largo", Value: "4"}}, later))

	after := s.Evaluate(cat).(quote.CabinQuote)
	assert.Equal(t, quote.TierVolumetric, after.Tier)
	assert.Equal(t, 5947.2, after.Total.Float64())
	assert.Equal(t, 2, s.Version)
	assert.Equal(t, later, s.UpdatedAt)
}

func TestFormSession_ApplyCoercesBadNumbers(t *testing.T) {
	s := NewFormSession(quote.ProductCabin, t0)

	require.NoError(t, s.Apply([]Change{
		{Field: "width", Value: "abc"},
		{Field: "height", Value: "2,75"},
	}, t0))

	assert.Equal(t, 0.0, s.Cabin.Dimensions.Width)
	assert.Equal(t, 2.75, s.Cabin.Dimensions.Height)
}

func TestFormSession_ApplyIsAllOrNothing(t *testing.T) {
	s := NewFormSession(quote.ProductCabin, t0)

	err := s.Apply([]Change{
		{Field: "material", Value: "PUR"},
		{Field: "door", Value: "garage"},
	}, t0.Add(time.Minute))

	assert.ErrorIs(t, err, catalog.ErrUnknownOption)
	assert.Equal(t, catalog.MaterialEPS, s.Cabin.Material)
	assert.Equal(t, 1, s.Version)
	assert.Equal(t, t0, s.UpdatedAt)
}

func TestFormSession_UnknownField(t *testing.T) {
	s := NewFormSession(quote.ProductPUR, t0)

	err := s.Apply([]Change{{Field: "width", Value: "2"}}, t0)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFormSession_PanelAndDoorFields(t *testing.T) {
	roof := NewFormSession(quote.ProductEPSRoof, t0)
	require.NoError(t, roof.Apply([]Change{{Field: "cantidad", Value: "10"}}, t0))
	assert.Equal(t, 10, roof.EPSRoof.Quantity)
	assert.Equal(t, roof.EPSRoof, roof.Input())

	wall := NewFormSession(quote.ProductEPSWall, t0)
	require.NoError(t, wall.Apply([]Change{
		{Field: "espesor", Value: "200"},
		{Field: "length", Value: "3.5"},
	}, t0))
	assert.Equal(t, catalog.EPSThickness200, wall.EPSWall.Thickness)
	assert.Equal(t, 3.5, wall.EPSWall.Length)

	pur := NewFormSession(quote.ProductPUR, t0)
	require.NoError(t, pur.Apply([]Change{{Field: "thickness", Value: "150mm"}, {Field: "quantity", Value: "2.9"}}, t0))
	assert.Equal(t, catalog.PURThickness150, pur.PUR.Thickness)
	assert.Equal(t, 2, pur.PUR.Quantity)

	door := NewFormSession(quote.ProductDoor, t0)
	require.NoError(t, door.Apply([]Change{{Field: "tipo", Value: "vaivén"}, {Field: "hojas", Value: "2"}}, t0))
	assert.Equal(t, catalog.DoorVaiven, door.Door.Type)
	assert.Equal(t, 2, door.Door.Leaves)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1.5, ParseNumber(" 1.5 "))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("NaN"))
	assert.Equal(t, 0.0, ParseNumber("Inf"))
	assert.Equal(t, 0, ParseCount("1e20"))
}

func TestParseCount_TruncatesFractions(t *testing.T) {
	assert.Equal(t, 2, ParseCount("2.5"))
	assert.Equal(t, 2, ParseCount("2,9"))
	assert.Equal(t, 0, ParseCount("abc"))
}
