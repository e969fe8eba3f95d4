// Package contact turns a computed quote into a Spanish message and a
// WhatsApp deep link the customer opens to reach a sales advisor.
package contact

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/quote"
)

// Formatter renders quotes as the prose sent to advisors.
type Formatter struct {
	catalog *catalog.Catalog
}

// NewFormatter creates a formatter that names options from the catalog.
func NewFormatter(cat *catalog.Catalog) *Formatter {
	return &Formatter{catalog: cat}
}

// Message renders the selection and the approximate total of a quote.
//
// Parameters:
//   - q: any computed quote
//
// Returns:
//   - string: the message text
//   - error: quote.ErrUnknownProduct for an unsupported quote type
func (f *Formatter) Message(q quote.Quote) (string, error) {
	switch q := q.(type) {
	case quote.CabinQuote:
		return f.cabin(q), nil
	case quote.EPSRoofQuote:
		return f.epsRoof(q), nil
	case quote.EPSWallQuote:
		return f.epsWall(q), nil
	case quote.PURQuote:
		return f.pur(q), nil
	case quote.DoorQuote:
		return f.door(q), nil
	default:
		return "", fmt.Errorf("%w: %T", quote.ErrUnknownProduct, q)
	}
}

func (f *Formatter) cabin(q quote.CabinQuote) string {
	in := q.Input
	var b strings.Builder
	b.WriteString("Hola, me gustaría información sobre una cámara frigorífica con las siguientes características:\n\n")
	fmt.Fprintf(&b, "• Tipo de panel: %s\n", f.materialName(in.Material))
	fmt.Fprintf(&b, "• Tipo de puerta: %s\n", f.doorName(in.Door))
	fmt.Fprintf(&b, "• Tipo de motor: %s\n", f.motorName(in.Motor))
	fmt.Fprintf(&b, "• Dimensiones: %sm (Ancho) x %sm (Alto) x %sm (Largo)\n",
		number(in.Dimensions.Width), number(in.Dimensions.Height), number(in.Dimensions.Length))
	fmt.Fprintf(&b, "• Entrega y servicio: %s\n", delivery(in))
	fmt.Fprintf(&b, "• Total aprox: %s (IGV incluido)\n", q.Total.Format())
	b.WriteString("\nGracias.")
	return b.String()
}

func (f *Formatter) epsRoof(q quote.EPSRoofQuote) string {
	length, width := f.catalog.RoofPanelSize()
	return fmt.Sprintf(
		"Hola, estoy interesado en comprar %d planchas de paneles EPS para techo (%sm x %sm, 200mm). Total aprox: %s",
		q.Input.Quantity, length.StringFixed(2), width.StringFixed(2), q.Total.Format(),
	)
}

func (f *Formatter) epsWall(q quote.EPSWallQuote) string {
	return fmt.Sprintf(
		"Hola, estoy interesado en paneles EPS para pared de %smm, %sm de largo (ancho %sm). Total aprox: %s",
		q.Input.Thickness, number(q.Input.Length), f.catalog.WallPanelWidth().String(), q.Total.Format(),
	)
}

func (f *Formatter) pur(q quote.PURQuote) string {
	return fmt.Sprintf(
		"Hola, estoy interesado en %d planchas de panel PUR de %smm. Total aprox: %s",
		q.Input.Quantity, q.Input.Thickness, q.Total.Format(),
	)
}

func (f *Formatter) door(q quote.DoorQuote) string {
	in := q.Input
	leaves := ""
	if in.Type == catalog.DoorVaiven {
		leaves = fmt.Sprintf(" con %d hoja(s)", in.Leaves)
	}
	return fmt.Sprintf(
		"Hola, estoy interesado en una puerta tipo %s%s de %sm x %sm. La cotización es %s (IGV incluido)",
		strings.ToLower(f.doorName(in.Type)), leaves, number(in.Width), number(in.Height), q.Total.Format(),
	)
}

func (f *Formatter) materialName(m catalog.Material) string {
	if opt, ok := f.catalog.Material(m); ok {
		return opt.Name
	}
	return string(m)
}

func (f *Formatter) doorName(d catalog.DoorType) string {
	if opt, ok := f.catalog.Door(d); ok {
		return opt.Name
	}
	return string(d)
}

func (f *Formatter) motorName(m catalog.MotorRating) string {
	if opt, ok := f.catalog.Motor(m); ok {
		return opt.Name
	}
	return string(m) + " HP"
}

func delivery(in quote.CabinInput) string {
	if in.Installation != catalog.InstallOnSite {
		return "Recoger en local"
	}
	if in.Location == catalog.LocationOther {
		return "Instalar fuera de Lima"
	}
	return "Instalar en Lima"
}

// number prints a measure the way it was typed: 2 not 2.00, 2.5 not 2.50.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
