package dto

import (
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/quote"
)

// OptionResponse is one selectable option of a form.
type OptionResponse struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// CatalogResponse lists the options and limits the forms are built from.
type CatalogResponse struct {
	Currency         string           `json:"currency"`
	TaxRate          float64          `json:"tax_rate"`
	Products         []quote.Product  `json:"products"`
	Materials        []OptionResponse `json:"materials"`
	Doors            []OptionResponse `json:"doors"`
	Locations        []OptionResponse `json:"locations"`
	Motors           []OptionResponse `json:"motors"`
	FlatMaxSurfaceM2 float64          `json:"flat_max_surface_m2"`
	FlatMaxHeightM   float64          `json:"flat_max_height_m"`
	ImagePlaceholder string           `json:"image_placeholder"`
}

// NewCatalogResponse maps the catalog.
//
// Parameters:
//   - cat: the price catalog
//   - placeholder: image shown when a product image fails to load
//
// Returns:
//   - CatalogResponse: the catalog view
func NewCatalogResponse(cat *catalog.Catalog, placeholder string) CatalogResponse {
	resp := CatalogResponse{
		Currency:         string(cat.Currency()),
		TaxRate:          cat.TaxRate().InexactFloat64(),
		Products:         quote.Products(),
		FlatMaxSurfaceM2: cat.FlatMaxSurface().InexactFloat64(),
		FlatMaxHeightM:   cat.FlatMaxHeight().InexactFloat64(),
		ImagePlaceholder: placeholder,
	}
	for _, m := range cat.Materials() {
		resp.Materials = append(resp.Materials, OptionResponse{
			Key: string(m.Key), Name: m.Name, Description: m.Description, Image: m.Image,
			Price: ptr(m.PricePerM2.InexactFloat64()),
		})
	}
	for _, d := range cat.Doors() {
		resp.Doors = append(resp.Doors, OptionResponse{
			Key: string(d.Key), Name: d.Name, Image: d.Image, Price: ptr(d.Price.InexactFloat64()),
		})
	}
	for _, l := range cat.Locations() {
		resp.Locations = append(resp.Locations, OptionResponse{
			Key: string(l.Key), Name: l.Name, Price: ptr(l.Surcharge.InexactFloat64()),
		})
	}
	for _, m := range cat.Motors() {
		resp.Motors = append(resp.Motors, OptionResponse{
			Key: string(m.Key), Name: m.Name, Price: ptr(m.Surcharge.InexactFloat64()),
		})
	}
	return resp
}
