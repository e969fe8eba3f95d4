package catalog

import (
	"errors"
	"fmt"

	"github.com/refripanel/quote-go/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// Catalog errors.
var (
	ErrNegativePrice  = errors.New("catalog price cannot be negative")
	ErrInvalidTaxRate = errors.New("tax rate must be between 0 and 1")
)

// Prices is the raw price sheet loaded from configuration.
// Every amount is expressed in the catalog currency.
type Prices struct {
	// Currency is the ISO 4217 code every price is quoted in
	Currency string `mapstructure:"currency"`

	// TaxRate is the IGV rate applied to every subtotal (0.18 = 18%)
	TaxRate float64 `mapstructure:"tax_rate"`

	Materials MaterialPrices `mapstructure:"materials"`
	Cabin     CabinPrices    `mapstructure:"cabin"`
	Doors     DoorPrices     `mapstructure:"doors"`
	Locations LocationPrices `mapstructure:"locations"`
	Motors    MotorPrices    `mapstructure:"motors"`
	Panels    PanelPrices    `mapstructure:"panels"`
}

// MaterialPrices are the per-m² panel prices.
type MaterialPrices struct {
	EPSPerM2 float64 `mapstructure:"eps_per_m2"`
	PURPerM2 float64 `mapstructure:"pur_per_m2"`
}

// CabinPrices drive the flat and volumetric cold-room tiers.
type CabinPrices struct {
	EPSFlatBase      float64 `mapstructure:"eps_flat_base"`
	PURFlatBase      float64 `mapstructure:"pur_flat_base"`
	EPSPerM3         float64 `mapstructure:"eps_per_m3"`
	PURPerM3         float64 `mapstructure:"pur_per_m3"`
	FlatMaxSurfaceM2 float64 `mapstructure:"flat_max_surface_m2"`
	FlatMaxHeightM   float64 `mapstructure:"flat_max_height_m"`
}

// DoorPrices holds the flat cabin door prices and the per-m² rates
// used when a door is quoted on its own.
type DoorPrices struct {
	Batiente       float64 `mapstructure:"batiente"`
	Vaiven         float64 `mapstructure:"vaiven"`
	Corredera      float64 `mapstructure:"corredera"`
	BatientePerM2  float64 `mapstructure:"batiente_per_m2"`
	VaivenPerM2    float64 `mapstructure:"vaiven_per_m2"`
	CorrederaPerM2 float64 `mapstructure:"corredera_per_m2"`
}

// LocationPrices are the installation surcharges per location tier.
type LocationPrices struct {
	Lima  float64 `mapstructure:"lima"`
	Other float64 `mapstructure:"other"`
}

// MotorPrices are the surcharges over the 2 HP base unit, which
// carries no surcharge.
type MotorPrices struct {
	HP2_5 float64 `mapstructure:"hp2_5"`
	HP3   float64 `mapstructure:"hp3"`
}

// PanelPrices covers the panels sold by the piece or by the meter.
type PanelPrices struct {
	RoofLengthM       float64 `mapstructure:"roof_length_m"`
	RoofWidthM        float64 `mapstructure:"roof_width_m"`
	RoofPerM2         float64 `mapstructure:"roof_per_m2"`
	WallWidthM        float64 `mapstructure:"wall_width_m"`
	Wall100PerM2      float64 `mapstructure:"wall_100_per_m2"`
	Wall200PerM2      float64 `mapstructure:"wall_200_per_m2"`
	PUR100UnitWithTax float64 `mapstructure:"pur_100_unit_with_tax"`
	PUR150UnitWithTax float64 `mapstructure:"pur_150_unit_with_tax"`
}

// DefaultPrices returns the published price sheet.
func DefaultPrices() Prices {
	return Prices{
		Currency: string(valueobject.CurrencyUSD),
		TaxRate:  0.18,
		Materials: MaterialPrices{
			EPSPerM2: 25,
			PURPerM2: 38,
		},
		Cabin: CabinPrices{
			EPSFlatBase:      3500,
			PURFlatBase:      4500,
			EPSPerM3:         227,
			PURPerM3:         280,
			FlatMaxSurfaceM2: 5.0,
			FlatMaxHeightM:   2.5,
		},
		Doors: DoorPrices{
			Batiente:       500,
			Vaiven:         600,
			Corredera:      700,
			BatientePerM2:  500,
			VaivenPerM2:    600,
			CorrederaPerM2: 700,
		},
		Locations: LocationPrices{
			Lima:  500,
			Other: 1000,
		},
		Motors: MotorPrices{
			HP2_5: 500,
			HP3:   1000,
		},
		Panels: PanelPrices{
			RoofLengthM:       3.00,
			RoofWidthM:        1.16,
			RoofPerM2:         25,
			WallWidthM:        1.16,
			Wall100PerM2:      25,
			Wall200PerM2:      35,
			PUR100UnitWithTax: 650,
			PUR150UnitWithTax: 750,
		},
	}
}

// MaterialOption describes a panel material offered on the site.
type MaterialOption struct {
	Key         Material
	Name        string
	Description string
	Image       string
	PricePerM2  decimal.Decimal
	FlatBase    decimal.Decimal
	PerM3       decimal.Decimal
}

// DoorOption describes a door mechanism.
type DoorOption struct {
	Key       DoorType
	Name      string
	Image     string
	Price     decimal.Decimal
	RatePerM2 decimal.Decimal
}

// LocationOption describes an installation location tier.
type LocationOption struct {
	Key       Location
	Name      string
	Surcharge decimal.Decimal
}

// MotorOption describes a refrigeration unit rating.
type MotorOption struct {
	Key       MotorRating
	Name      string
	Surcharge decimal.Decimal
}

// Catalog is the immutable price reference. Build it once with New and
// share the pointer; nothing mutates it afterwards.
type Catalog struct {
	currency  valueobject.Currency
	taxRate   decimal.Decimal
	materials []MaterialOption
	doors     []DoorOption
	locations []LocationOption
	motors    []MotorOption

	flatMaxSurface decimal.Decimal
	flatMaxHeight  decimal.Decimal

	roofLength   decimal.Decimal
	roofWidth    decimal.Decimal
	roofPerM2    decimal.Decimal
	wallWidth    decimal.Decimal
	wallPerM2    map[EPSThickness]decimal.Decimal
	purUnitGross map[PURThickness]decimal.Decimal
}

// New validates a price sheet and builds the catalog.
//
// Parameters:
//   - p: the price sheet
//
// Returns:
//   - *Catalog: the immutable catalog
//   - error: ErrNegativePrice, ErrInvalidTaxRate or an invalid currency
func New(p Prices) (*Catalog, error) {
	currency, err := valueobject.ParseCurrency(p.Currency)
	if err != nil {
		return nil, fmt.Errorf("catalog currency: %w", err)
	}
	if p.TaxRate < 0 || p.TaxRate >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaxRate, p.TaxRate)
	}

	amounts := map[string]float64{
		"materials.eps_per_m2":         p.Materials.EPSPerM2,
		"materials.pur_per_m2":         p.Materials.PURPerM2,
		"cabin.eps_flat_base":          p.Cabin.EPSFlatBase,
		"cabin.pur_flat_base":          p.Cabin.PURFlatBase,
		"cabin.eps_per_m3":             p.Cabin.EPSPerM3,
		"cabin.pur_per_m3":             p.Cabin.PURPerM3,
		"cabin.flat_max_surface_m2":    p.Cabin.FlatMaxSurfaceM2,
		"cabin.flat_max_height_m":      p.Cabin.FlatMaxHeightM,
		"doors.batiente":               p.Doors.Batiente,
		"doors.vaiven":                 p.Doors.Vaiven,
		"doors.corredera":              p.Doors.Corredera,
		"doors.batiente_per_m2":        p.Doors.BatientePerM2,
		"doors.vaiven_per_m2":          p.Doors.VaivenPerM2,
		"doors.corredera_per_m2":       p.Doors.CorrederaPerM2,
		"locations.lima":               p.Locations.Lima,
		"locations.other":              p.Locations.Other,
		"motors.hp2_5":                 p.Motors.HP2_5,
		"motors.hp3":                   p.Motors.HP3,
		"panels.roof_length_m":         p.Panels.RoofLengthM,
		"panels.roof_width_m":          p.Panels.RoofWidthM,
		"panels.roof_per_m2":           p.Panels.RoofPerM2,
		"panels.wall_width_m":          p.Panels.WallWidthM,
		"panels.wall_100_per_m2":       p.Panels.Wall100PerM2,
		"panels.wall_200_per_m2":       p.Panels.Wall200PerM2,
		"panels.pur_100_unit_with_tax": p.Panels.PUR100UnitWithTax,
		"panels.pur_150_unit_with_tax": p.Panels.PUR150UnitWithTax,
	}
	for key, v := range amounts {
		if v < 0 {
			return nil, fmt.Errorf("%w: %s=%v", ErrNegativePrice, key, v)
		}
	}

	d := decimal.NewFromFloat
	return &Catalog{
		currency: currency,
		taxRate:  d(p.TaxRate),
		materials: []MaterialOption{
			{
				Key:         MaterialEPS,
				Name:        "Poliestireno",
				Description: "Económico y ligero.",
				Image:       "assets/Poliestireno_pared.jpg",
				PricePerM2:  d(p.Materials.EPSPerM2),
				FlatBase:    d(p.Cabin.EPSFlatBase),
				PerM3:       d(p.Cabin.EPSPerM3),
			},
			{
				Key:         MaterialPUR,
				Name:        "Poliuretano",
				Description: "Alta eficiencia térmica.",
				Image:       "assets/Poliuretano_pared.jpg",
				PricePerM2:  d(p.Materials.PURPerM2),
				FlatBase:    d(p.Cabin.PURFlatBase),
				PerM3:       d(p.Cabin.PURPerM3),
			},
		},
		doors: []DoorOption{
			{Key: DoorBatiente, Name: "Batiente", Image: "assets/Puertas/Pivotante.jpg", Price: d(p.Doors.Batiente), RatePerM2: d(p.Doors.BatientePerM2)},
			{Key: DoorVaiven, Name: "Vaivén", Image: "assets/Puertas/Vaiven.jpg", Price: d(p.Doors.Vaiven), RatePerM2: d(p.Doors.VaivenPerM2)},
			{Key: DoorCorredera, Name: "Corredera", Image: "assets/Puertas/Corredera.jpg", Price: d(p.Doors.Corredera), RatePerM2: d(p.Doors.CorrederaPerM2)},
		},
		locations: []LocationOption{
			{Key: LocationLima, Name: "Lima", Surcharge: d(p.Locations.Lima)},
			{Key: LocationOther, Name: "Fuera de Lima", Surcharge: d(p.Locations.Other)},
		},
		motors: []MotorOption{
			{Key: Motor2HP, Name: "2 HP", Surcharge: decimal.Zero},
			{Key: Motor2_5HP, Name: "2.5 HP", Surcharge: d(p.Motors.HP2_5)},
			{Key: Motor3HP, Name: "3 HP", Surcharge: d(p.Motors.HP3)},
			{Key: MotorOtherHP, Name: "Otra potencia", Surcharge: decimal.Zero},
		},
		flatMaxSurface: d(p.Cabin.FlatMaxSurfaceM2),
		flatMaxHeight:  d(p.Cabin.FlatMaxHeightM),
		roofLength:     d(p.Panels.RoofLengthM),
		roofWidth:      d(p.Panels.RoofWidthM),
		roofPerM2:      d(p.Panels.RoofPerM2),
		wallWidth:      d(p.Panels.WallWidthM),
		wallPerM2: map[EPSThickness]decimal.Decimal{
			EPSThickness100: d(p.Panels.Wall100PerM2),
			EPSThickness200: d(p.Panels.Wall200PerM2),
		},
		purUnitGross: map[PURThickness]decimal.Decimal{
			PURThickness100: d(p.Panels.PUR100UnitWithTax),
			PURThickness150: d(p.Panels.PUR150UnitWithTax),
		},
	}, nil
}

// MustNew builds the catalog and panics on an invalid price sheet.
func MustNew(p Prices) *Catalog {
	c, err := New(p)
	if err != nil {
		panic(fmt.Sprintf("failed to build catalog: %v", err))
	}
	return c
}

// Currency returns the currency every price is quoted in.
func (c *Catalog) Currency() valueobject.Currency { return c.currency }

// TaxRate returns the IGV rate.
func (c *Catalog) TaxRate() decimal.Decimal { return c.taxRate }

// Money wraps an amount in the catalog currency.
func (c *Catalog) Money(amount decimal.Decimal) valueobject.Money {
	return valueobject.NewMoney(amount, c.currency)
}

// Zero returns zero in the catalog currency.
func (c *Catalog) Zero() valueobject.Money { return valueobject.Zero(c.currency) }

// Materials lists the material options in display order.
func (c *Catalog) Materials() []MaterialOption { return append([]MaterialOption(nil), c.materials...) }

// Doors lists the door options in display order.
func (c *Catalog) Doors() []DoorOption { return append([]DoorOption(nil), c.doors...) }

// Locations lists the location tiers in display order.
func (c *Catalog) Locations() []LocationOption { return append([]LocationOption(nil), c.locations...) }

// Motors lists the motor ratings in display order.
func (c *Catalog) Motors() []MotorOption { return append([]MotorOption(nil), c.motors...) }

// Material looks up a material option.
func (c *Catalog) Material(key Material) (MaterialOption, bool) {
	for _, m := range c.materials {
		if m.Key == key {
			return m, true
		}
	}
	return MaterialOption{}, false
}

// Door looks up a door option.
func (c *Catalog) Door(key DoorType) (DoorOption, bool) {
	for _, d := range c.doors {
		if d.Key == key {
			return d, true
		}
	}
	return DoorOption{}, false
}

// Location looks up a location tier.
func (c *Catalog) Location(key Location) (LocationOption, bool) {
	for _, l := range c.locations {
		if l.Key == key {
			return l, true
		}
	}
	return LocationOption{}, false
}

// Motor looks up a motor rating.
func (c *Catalog) Motor(key MotorRating) (MotorOption, bool) {
	for _, m := range c.motors {
		if m.Key == key {
			return m, true
		}
	}
	return MotorOption{}, false
}

// The price lookups below never fail: an unmapped key prices at zero.

// FlatBase returns the flat-tier cabin price for a material.
func (c *Catalog) FlatBase(key Material) decimal.Decimal {
	m, _ := c.Material(key)
	return m.FlatBase
}

// VolumetricRate returns the per-m³ cabin price for a material.
func (c *Catalog) VolumetricRate(key Material) decimal.Decimal {
	m, _ := c.Material(key)
	return m.PerM3
}

// DoorPrice returns the flat price of a cabin door.
func (c *Catalog) DoorPrice(key DoorType) decimal.Decimal {
	d, _ := c.Door(key)
	return d.Price
}

// DoorRatePerM2 returns the per-m² price of a standalone door.
func (c *Catalog) DoorRatePerM2(key DoorType) decimal.Decimal {
	d, _ := c.Door(key)
	return d.RatePerM2
}

// LocationSurcharge returns the installation surcharge for a location tier.
func (c *Catalog) LocationSurcharge(key Location) decimal.Decimal {
	l, _ := c.Location(key)
	return l.Surcharge
}

// MotorSurcharge returns the increment over the base motor rating.
func (c *Catalog) MotorSurcharge(key MotorRating) decimal.Decimal {
	m, _ := c.Motor(key)
	return m.Surcharge
}

// FlatMaxSurface is the largest footprint, in m², priced at the flat tier.
func (c *Catalog) FlatMaxSurface() decimal.Decimal { return c.flatMaxSurface }

// FlatMaxHeight is the tallest cabin, in meters, priced at the flat tier.
func (c *Catalog) FlatMaxHeight() decimal.Decimal { return c.flatMaxHeight }

// RoofPanelSize returns the fixed roof panel length and width in meters.
func (c *Catalog) RoofPanelSize() (length, width decimal.Decimal) {
	return c.roofLength, c.roofWidth
}

// RoofPanelPerM2 returns the EPS roof panel price per m².
func (c *Catalog) RoofPanelPerM2() decimal.Decimal { return c.roofPerM2 }

// WallPanelWidth returns the fixed EPS wall panel width in meters.
func (c *Catalog) WallPanelWidth() decimal.Decimal { return c.wallWidth }

// WallPanelPerM2 returns the EPS wall panel price per m² for a thickness.
func (c *Catalog) WallPanelPerM2(t EPSThickness) decimal.Decimal { return c.wallPerM2[t] }

// PURUnitWithTax returns the tax-inclusive PUR panel unit price for a thickness.
func (c *Catalog) PURUnitWithTax(t PURThickness) decimal.Decimal { return c.purUnitGross[t] }
