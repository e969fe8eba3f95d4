// Package quote contains the pure price calculators. Every calculator maps
// its input and the catalog to an itemized breakdown; none of them fail:
// missing measures price at zero and unmapped options add nothing.
package quote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// ErrUnknownProduct is returned when a product tag is not quotable.
var ErrUnknownProduct = errors.New("unknown product")

// Product identifies a quotable product line.
type Product string

const (
	ProductCabin   Product = "cabin"    // Cold room (cámara frigorífica)
	ProductEPSRoof Product = "eps-roof" // EPS roof panels
	ProductEPSWall Product = "eps-wall" // EPS wall panels
	ProductPUR     Product = "pur"      // PUR panels
	ProductDoor    Product = "door"     // Standalone door
)

// Products lists every product line.
func Products() []Product {
	return []Product{ProductCabin, ProductEPSRoof, ProductEPSWall, ProductPUR, ProductDoor}
}

// ParseProduct parses a product tag. "cameras" is accepted for cabins.
func ParseProduct(tag string) (Product, error) {
	switch p := Product(strings.ToLower(strings.TrimSpace(tag))); p {
	case ProductCabin, ProductEPSRoof, ProductEPSWall, ProductPUR, ProductDoor:
		return p, nil
	case "cameras", "camara":
		return ProductCabin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProduct, tag)
}

// Line is a single itemized cost component.
type Line struct {
	Code   string
	Label  string
	Amount valueobject.Money
}

// Totals holds the pre-tax subtotal, the IGV and the total.
type Totals struct {
	Subtotal valueobject.Money
	Tax      valueobject.Money
	Total    valueobject.Money
}

// Quote is the common view over every product breakdown.
type Quote interface {
	// Product returns the product line the quote belongs to.
	Product() Product

	// Lines returns the additive cost components, in display order.
	Lines() []Line

	// Summary returns subtotal, tax and total.
	Summary() Totals
}

// withTax adds the catalog IGV on top of a subtotal.
func withTax(cat *catalog.Catalog, subtotal valueobject.Money) Totals {
	tax := subtotal.Mul(cat.TaxRate())
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// fromGross splits a tax-inclusive total back into subtotal and tax.
// The tax is the remainder, so Subtotal+Tax always equals Total.
func fromGross(cat *catalog.Catalog, gross valueobject.Money) Totals {
	subtotal, err := gross.Divide(decimal.NewFromInt(1).Add(cat.TaxRate()))
	if err != nil {
		subtotal = cat.Zero()
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      gross.Subtract(subtotal),
		Total:    gross,
	}
}

// count coerces a raw quantity to a non-negative whole number.
func count(n int) decimal.Decimal {
	if n < 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n))
}
