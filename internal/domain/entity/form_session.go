// Package entity contains the core bussiness entities of the domain layer.
package entity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/quote"
)

// Form session errors define domain-specific error conditions for forms.
var (
	ErrUnknownField = errors.New("unknown form field")
)

// Change is a single form edit: a field name and its raw value as typed.
type Change struct {
	// Field is the form field name (e.g., "width", "material")
	Field string `json:"field"`

	// Value is the raw field value
	Value string `json:"value"`
}

// FormSession is the live state of one quote form. It holds only the
// user's selections; the breakdown is always recomputed from them.
type FormSession struct {
	// ID is the unique identifier for the session
	ID uuid.UUID `json:"id"`

	// Product is the product line the form quotes
	Product quote.Product `json:"product"`

	// Exactly one of the inputs below is used, the one matching Product.
	Cabin   quote.CabinInput   `json:"cabin"`
	EPSRoof quote.EPSRoofInput `json:"eps_roof"`
	EPSWall quote.EPSWallInput `json:"eps_wall"`
	PUR     quote.PURInput     `json:"pur"`
	Door    quote.DoorInput    `json:"door"`

	// CreatedAt is the timestamp when the session was opened
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last applied change
	UpdatedAt time.Time `json:"updated_at"`

	// Version is used for optimistic locking
	Version int `json:"version"`
}

// NewFormSession opens a form for a product with its default selections.
//
// Parameters:
//   - product: the product line to quote
//   - now: the opening time
//
// Returns:
//   - *FormSession: the new session at version 1
func NewFormSession(product quote.Product, now time.Time) *FormSession {
	return &FormSession{
		ID:        uuid.New(),
		Product:   product,
		Cabin:     quote.DefaultCabinInput(),
		EPSRoof:   quote.DefaultEPSRoofInput(),
		EPSWall:   quote.DefaultEPSWallInput(),
		PUR:       quote.DefaultPURInput(),
		Door:      quote.DefaultDoorInput(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// Input returns the input struct of the session's product.
func (s *FormSession) Input() any {
	switch s.Product {
	case quote.ProductEPSRoof:
		return s.EPSRoof
	case quote.ProductEPSWall:
		return s.EPSWall
	case quote.ProductPUR:
		return s.PUR
	case quote.ProductDoor:
		return s.Door
	default:
		return s.Cabin
	}
}

// Evaluate recomputes the breakdown from the current selections.
func (s *FormSession) Evaluate(cat *catalog.Catalog) quote.Quote {
	switch s.Product {
	case quote.ProductEPSRoof:
		return quote.EPSRoof(cat, s.EPSRoof)
	case quote.ProductEPSWall:
		return quote.EPSWall(cat, s.EPSWall)
	case quote.ProductPUR:
		return quote.PUR(cat, s.PUR)
	case quote.ProductDoor:
		return quote.Door(cat, s.Door)
	default:
		return quote.Cabin(cat, s.Cabin)
	}
}

// Apply applies edits in order and bumps the version once. It stops at
// the first rejected edit and leaves the session untouched in that case.
//
// Numeric fields never fail: text that is not a number is stored as zero.
// Option fields reject unknown tags with catalog.ErrUnknownOption.
//
// Parameters:
//   - changes: the edits to apply
//   - now: the edit time
//
// Returns:
//   - error: ErrUnknownField or catalog.ErrUnknownOption
func (s *FormSession) Apply(changes []Change, now time.Time) error {
	next := *s
	for _, c := range changes {
		if err := next.set(c.Field, c.Value); err != nil {
			return err
		}
	}
	next.Version++
	next.UpdatedAt = now
	*s = next
	return nil
}

func (s *FormSession) set(field, value string) error {
	field = strings.ToLower(strings.TrimSpace(field))
	var err error

	switch s.Product {
	case quote.ProductCabin:
		in := &s.Cabin
		switch field {
		case "width", "ancho":
			in.Dimensions.Width = ParseNumber(value)
		case "height", "alto":
			in.Dimensions.Height = ParseNumber(value)
		case "length", "largo":
			in.Dimensions.Length = ParseNumber(value)
		case "material":
			in.Material, err = catalog.ParseMaterial(value)
		case "door", "puerta":
			in.Door, err = catalog.ParseDoorType(value)
		case "motor":
			in.Motor, err = catalog.ParseMotorRating(value)
		case "installation", "instalacion":
			in.Installation, err = catalog.ParseInstallMode(value)
		case "location", "ubicacion":
			in.Location, err = catalog.ParseLocation(value)
		default:
			return s.unknownField(field)
		}
	case quote.ProductEPSRoof:
		switch field {
		case "quantity", "cantidad":
			s.EPSRoof.Quantity = ParseCount(value)
		default:
			return s.unknownField(field)
		}
	case quote.ProductEPSWall:
		switch field {
		case "thickness", "espesor":
			s.EPSWall.Thickness, err = catalog.ParseEPSThickness(value)
		case "length", "largo":
			s.EPSWall.Length = ParseNumber(value)
		default:
			return s.unknownField(field)
		}
	case quote.ProductPUR:
		switch field {
		case "thickness", "espesor":
			s.PUR.Thickness, err = catalog.ParsePURThickness(value)
		case "quantity", "cantidad":
			s.PUR.Quantity = ParseCount(value)
		default:
			return s.unknownField(field)
		}
	case quote.ProductDoor:
		switch field {
		case "type", "tipo":
			s.Door.Type, err = catalog.ParseDoorType(value)
		case "width", "ancho":
			s.Door.Width = ParseNumber(value)
		case "height", "alto":
			s.Door.Height = ParseNumber(value)
		case "leaves", "hojas":
			s.Door.Leaves = ParseCount(value)
		default:
			return s.unknownField(field)
		}
	default:
		return s.unknownField(field)
	}

	if err != nil {
		return fmt.Errorf("field %q: %w", field, err)
	}
	return nil
}

func (s *FormSession) unknownField(field string) error {
	return fmt.Errorf("%w: %q for %s", ErrUnknownField, field, s.Product)
}

// ParseNumber reads a typed measure. Decimal commas are accepted; anything
// that is not a finite number reads as zero.
func ParseNumber(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseCount reads a typed quantity, truncating fractions. Anything that is
// not a number reads as zero.
func ParseCount(raw string) int {
	v := ParseNumber(raw)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}
