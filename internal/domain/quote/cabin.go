package quote

import (
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// Tier is the cold-room pricing mode.
type Tier string

const (
	TierNone       Tier = ""           // Measures incomplete, nothing priced
	TierFlat       Tier = "flat"       // Small cabin, fixed base price
	TierVolumetric Tier = "volumetric" // Priced per m³
)

// CabinInput is the cold-room configuration.
type CabinInput struct {
	Dimensions   valueobject.Dimensions `json:"dimensions"`
	Material     catalog.Material       `json:"material" validate:"required"`
	Door         catalog.DoorType       `json:"door" validate:"required"`
	Motor        catalog.MotorRating    `json:"motor" validate:"required"`
	Installation catalog.InstallMode    `json:"installation" validate:"required"`
	Location     catalog.Location       `json:"location" validate:"required"`
}

// DefaultCabinInput is the configuration the cabin form opens with.
func DefaultCabinInput() CabinInput {
	return CabinInput{
		Dimensions:   valueobject.NewDimensions(2.0, 2.5, 2.0),
		Material:     catalog.MaterialEPS,
		Door:         catalog.DoorBatiente,
		Motor:        catalog.Motor2HP,
		Installation: catalog.InstallPickup,
		Location:     catalog.LocationLima,
	}
}

// CabinQuote is the itemized cold-room breakdown.
type CabinQuote struct {
	Input        CabinInput
	Surface      decimal.Decimal
	Volume       decimal.Decimal
	Tier         Tier
	Base         valueobject.Money
	Door         valueobject.Money
	Motor        valueobject.Money
	Installation valueobject.Money
	Totals
}

// Product implements Quote.
func (q CabinQuote) Product() Product { return ProductCabin }

// Summary implements Quote.
func (q CabinQuote) Summary() Totals { return q.Totals }

// Lines implements Quote.
func (q CabinQuote) Lines() []Line {
	return []Line{
		{Code: "base", Label: "Cámara", Amount: q.Base},
		{Code: "door", Label: "Puerta", Amount: q.Door},
		{Code: "motor", Label: "Motor", Amount: q.Motor},
		{Code: "installation", Label: "Instalación", Amount: q.Installation},
	}
}

// FlatTier reports whether a cabin qualifies for the flat price: footprint
// and height both at or under the catalog limits.
func FlatTier(cat *catalog.Catalog, d valueobject.Dimensions) bool {
	return d.Surface().LessThanOrEqual(cat.FlatMaxSurface()) &&
		decimal.NewFromFloat(d.Height).LessThanOrEqual(cat.FlatMaxHeight())
}

// Cabin prices a cold room.
//
// Small cabins take the material's flat base price and are charged only the
// difference between the chosen door and the batiente door. Larger cabins
// are priced by volume and pay the full door price. Motor and installation
// surcharges are added on top, then IGV.
//
// A cabin with a missing measure prices at zero.
//
// Parameters:
//   - cat: the price catalog
//   - in: the cabin configuration
//
// Returns:
//   - CabinQuote: the itemized breakdown
func Cabin(cat *catalog.Catalog, in CabinInput) CabinQuote {
	dims := in.Dimensions.Sanitized()
	q := CabinQuote{
		Input:        in,
		Surface:      dims.Surface(),
		Volume:       dims.Volume(),
		Tier:         TierNone,
		Base:         cat.Zero(),
		Door:         cat.Zero(),
		Motor:        cat.Zero(),
		Installation: cat.Zero(),
	}
	if !dims.Complete() {
		q.Totals = withTax(cat, cat.Zero())
		return q
	}

	if FlatTier(cat, dims) {
		q.Tier = TierFlat
		q.Base = cat.Money(cat.FlatBase(in.Material))
		reference := cat.DoorPrice(catalog.DoorBatiente)
		q.Door = cat.Money(cat.DoorPrice(in.Door).Sub(reference)).NonNegative()
	} else {
		q.Tier = TierVolumetric
		q.Base = cat.Money(q.Volume.Mul(cat.VolumetricRate(in.Material)))
		q.Door = cat.Money(cat.DoorPrice(in.Door))
	}

	if in.Motor != catalog.Motor2HP {
		q.Motor = cat.Money(cat.MotorSurcharge(in.Motor))
	}
	if in.Installation == catalog.InstallOnSite {
		q.Installation = cat.Money(cat.LocationSurcharge(in.Location))
	}

	subtotal := q.Base.Add(q.Door).Add(q.Motor).Add(q.Installation)
	q.Totals = withTax(cat, subtotal)
	return q
}
