package contact

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/refripanel/quote-go/internal/application/port"
	"github.com/refripanel/quote-go/internal/domain/quote"
)

// DefaultBaseURL is the WhatsApp click-to-chat endpoint.
const DefaultBaseURL = "https://wa.me/"

// Phones holds the advisor line for each page.
type Phones struct {
	Cabin string
	Door  string
	Panel string
}

// DefaultPhones are the lines published on the site.
func DefaultPhones() Phones {
	return Phones{
		Cabin: "51998691832",
		Door:  "51991038374",
		Panel: "51991038374",
	}
}

// For returns the advisor line for a product.
func (p Phones) For(product quote.Product) string {
	switch product {
	case quote.ProductCabin:
		return p.Cabin
	case quote.ProductDoor:
		return p.Door
	default:
		return p.Panel
	}
}

// Link is a ready-to-open contact link.
type Link struct {
	Product quote.Product
	Phone   string
	Message string
	URL     string
}

// Dispatcher builds contact links. Opening the link is left to the caller;
// nothing is sent from here.
type Dispatcher struct {
	baseURL   string
	phones    Phones
	formatter *Formatter
	log       port.Logger
}

// NewDispatcher creates a dispatcher.
//
// Parameters:
//   - baseURL: the click-to-chat endpoint, DefaultBaseURL when empty
//   - phones: advisor lines per page
//   - formatter: renders the message
//   - log: application logger
//
// Returns:
//   - *Dispatcher: the dispatcher
func NewDispatcher(baseURL string, phones Phones, formatter *Formatter, log port.Logger) *Dispatcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Dispatcher{
		baseURL:   baseURL,
		phones:    phones,
		formatter: formatter,
		log:       log,
	}
}

// Link renders the quote message and the link that opens a chat with it.
// ctx only scopes the log entry.
func (d *Dispatcher) Link(ctx context.Context, q quote.Quote) (Link, error) {
	msg, err := d.formatter.Message(q)
	if err != nil {
		return Link{}, fmt.Errorf("format contact message: %w", err)
	}

	phone := d.phones.For(q.Product())
	link := Link{
		Product: q.Product(),
		Phone:   phone,
		Message: msg,
		URL:     d.baseURL + phone + "?text=" + EncodeText(msg),
	}

	d.log.WithContext(ctx).Info("Contact link built",
		"product", q.Product(),
		"phone", phone,
		"total", q.Summary().Total.String(),
	)
	return link, nil
}

// EncodeText percent-encodes UTF-8 text for a query value, with spaces as
// %20 so chat clients do not show literal plus signs.
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
