package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/refripanel/quote-go/internal/domain/valueobject"
)

// LooseFloat accepts a JSON number or a numeric string, the way form
// inputs arrive. Anything else decodes as zero instead of failing.
type LooseFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *LooseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		*f = LooseFloat(entity.ParseNumber(s))
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = LooseFloat(v)
	return nil
}

// Float returns the value as a float64.
func (f LooseFloat) Float() float64 { return float64(f) }

// Count returns the value truncated to a whole quantity.
func (f LooseFloat) Count() int {
	if f > math.MaxInt32 || f < 0 {
		return 0
	}
	return int(f)
}

// QuoteRequest is a stateless quote request for one product.
type QuoteRequest interface {
	Bind(r *http.Request) error

	// Input returns the parsed calculator input.
	Input() any
}

// NewQuoteRequest returns an empty request for a product.
func NewQuoteRequest(p quote.Product) QuoteRequest {
	switch p {
	case quote.ProductEPSRoof:
		return &EPSRoofQuoteRequest{}
	case quote.ProductEPSWall:
		return &EPSWallQuoteRequest{}
	case quote.ProductPUR:
		return &PURQuoteRequest{}
	case quote.ProductDoor:
		return &DoorQuoteRequest{}
	default:
		return &CabinQuoteRequest{}
	}
}

// CabinQuoteRequest is the cold-room form. Omitted options take the form
// defaults; omitted measures are zero.
type CabinQuoteRequest struct {
	Width        LooseFloat `json:"width"`
	Height       LooseFloat `json:"height"`
	Length       LooseFloat `json:"length"`
	Material     string     `json:"material"`
	Door         string     `json:"door"`
	Motor        string     `json:"motor"`
	Installation string     `json:"installation"`
	Location     string     `json:"location"`

	input quote.CabinInput
}

// Bind implements render.Binder.
func (req *CabinQuoteRequest) Bind(r *http.Request) error {
	in := quote.DefaultCabinInput()
	in.Dimensions = valueobject.NewDimensions(req.Width.Float(), req.Height.Float(), req.Length.Float())

	var err error
	if req.Material != "" {
		if in.Material, err = catalog.ParseMaterial(req.Material); err != nil {
			return err
		}
	}
	if req.Door != "" {
		if in.Door, err = catalog.ParseDoorType(req.Door); err != nil {
			return err
		}
	}
	if req.Motor != "" {
		if in.Motor, err = catalog.ParseMotorRating(req.Motor); err != nil {
			return err
		}
	}
	if req.Installation != "" {
		if in.Installation, err = catalog.ParseInstallMode(req.Installation); err != nil {
			return err
		}
	}
	if req.Location != "" {
		if in.Location, err = catalog.ParseLocation(req.Location); err != nil {
			return err
		}
	}

	req.input = in
	return nil
}

// Input implements QuoteRequest.
func (req *CabinQuoteRequest) Input() any { return req.input }

// EPSRoofQuoteRequest is the EPS roof panel form.
type EPSRoofQuoteRequest struct {
	Quantity LooseFloat `json:"quantity"`

	input quote.EPSRoofInput
}

// Bind implements render.Binder.
func (req *EPSRoofQuoteRequest) Bind(r *http.Request) error {
	req.input = quote.EPSRoofInput{Quantity: req.Quantity.Count()}
	return nil
}

// Input implements QuoteRequest.
func (req *EPSRoofQuoteRequest) Input() any { return req.input }

// EPSWallQuoteRequest is the EPS wall panel form.
type EPSWallQuoteRequest struct {
	Thickness string     `json:"thickness"`
	Length    LooseFloat `json:"length"`

	input quote.EPSWallInput
}

// Bind implements render.Binder.
func (req *EPSWallQuoteRequest) Bind(r *http.Request) error {
	in := quote.DefaultEPSWallInput()
	in.Length = valueobject.Measure(req.Length.Float())
	if req.Thickness != "" {
		t, err := catalog.ParseEPSThickness(req.Thickness)
		if err != nil {
			return err
		}
		in.Thickness = t
	}
	req.input = in
	return nil
}

// Input implements QuoteRequest.
func (req *EPSWallQuoteRequest) Input() any { return req.input }

// PURQuoteRequest is the PUR panel form.
type PURQuoteRequest struct {
	Thickness string     `json:"thickness"`
	Quantity  LooseFloat `json:"quantity"`

	input quote.PURInput
}

// Bind implements render.Binder.
func (req *PURQuoteRequest) Bind(r *http.Request) error {
	in := quote.DefaultPURInput()
	in.Quantity = req.Quantity.Count()
	if req.Thickness != "" {
		t, err := catalog.ParsePURThickness(req.Thickness)
		if err != nil {
			return err
		}
		in.Thickness = t
	}
	req.input = in
	return nil
}

// Input implements QuoteRequest.
func (req *PURQuoteRequest) Input() any { return req.input }

// DoorQuoteRequest is the standalone door form.
type DoorQuoteRequest struct {
	Type   string     `json:"type"`
	Width  LooseFloat `json:"width"`
	Height LooseFloat `json:"height"`
	Leaves LooseFloat `json:"leaves"`

	input quote.DoorInput
}

// Bind implements render.Binder.
func (req *DoorQuoteRequest) Bind(r *http.Request) error {
	in := quote.DefaultDoorInput()
	in.Width = valueobject.Measure(req.Width.Float())
	in.Height = valueobject.Measure(req.Height.Float())
	if req.Leaves != 0 {
		in.Leaves = req.Leaves.Count()
	}
	if req.Type != "" {
		t, err := catalog.ParseDoorType(req.Type)
		if err != nil {
			return err
		}
		in.Type = t
	}
	req.input = in
	return nil
}

// Input implements QuoteRequest.
func (req *DoorQuoteRequest) Input() any { return req.input }

// LineResponse is one itemized cost component.
type LineResponse struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// QuoteResponse is the breakdown shown next to a form.
type QuoteResponse struct {
	Product        quote.Product  `json:"product"`
	Currency       string         `json:"currency"`
	Lines          []LineResponse `json:"lines"`
	Subtotal       float64        `json:"subtotal"`
	Tax            float64        `json:"tax"`
	Total          float64        `json:"total"`
	FormattedTotal string         `json:"formatted_total"`

	// Cabin only.
	Tier      string   `json:"tier,omitempty"`
	SurfaceM2 *float64 `json:"surface_m2,omitempty"`
	VolumeM3  *float64 `json:"volume_m3,omitempty"`

	// Panels and doors.
	AreaM2    *float64 `json:"area_m2,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// NewQuoteResponse maps a computed quote to its response.
func NewQuoteResponse(q quote.Quote) QuoteResponse {
	totals := q.Summary()
	lines := q.Lines()
	resp := QuoteResponse{
		Product:        q.Product(),
		Currency:       string(totals.Total.Currency),
		Lines:          make([]LineResponse, 0, len(lines)),
		Subtotal:       totals.Subtotal.Float64(),
		Tax:            totals.Tax.Float64(),
		Total:          totals.Total.Float64(),
		FormattedTotal: totals.Total.Format(),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, LineResponse{
			Code:      l.Code,
			Label:     l.Label,
			Amount:    l.Amount.Float64(),
			Formatted: l.Amount.Format(),
		})
	}

	switch q := q.(type) {
	case quote.CabinQuote:
		resp.Tier = string(q.Tier)
		resp.SurfaceM2 = ptr(q.Surface.InexactFloat64())
		resp.VolumeM3 = ptr(q.Volume.InexactFloat64())
	case quote.EPSRoofQuote:
		resp.AreaM2 = ptr(q.PanelArea.InexactFloat64())
	case quote.EPSWallQuote:
		resp.AreaM2 = ptr(q.Area.InexactFloat64())
		resp.UnitPrice = ptr(q.PricePerM2.Float64())
	case quote.PURQuote:
		resp.UnitPrice = ptr(q.UnitWithTax.Float64())
	case quote.DoorQuote:
		resp.AreaM2 = ptr(q.Area.InexactFloat64())
		resp.UnitPrice = ptr(q.RatePerM2.Float64())
	}
	return resp
}

// ContactResponse is the ready-to-open contact link.
type ContactResponse struct {
	Product quote.Product `json:"product"`
	Phone   string        `json:"phone"`
	Message string        `json:"message"`
	URL     string        `json:"url"`
	Quote   QuoteResponse `json:"quote"`
}

func ptr(v float64) *float64 { return &v }
