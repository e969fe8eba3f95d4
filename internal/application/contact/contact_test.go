package contact

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/refripanel/quote-go/internal/domain/valueobject"
	"github.com/refripanel/quote-go/internal/infrastructure/logging"
)

func newDispatcher(t *testing.T) (*Dispatcher, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.New(catalog.DefaultPrices())
	require.NoError(t, err)
	return NewDispatcher("", DefaultPhones(), NewFormatter(cat), logging.Nop()), cat
}

func TestFormatter_CabinMentionsEverySelection(t *testing.T) {
	_, cat := newDispatcher(t)
	in := quote.CabinInput{
		Dimensions:   valueobject.NewDimensions(2, 2.5, 4),
		Material:     catalog.MaterialPUR,
		Door:         catalog.DoorCorredera,
		Motor:        catalog.Motor2_5HP,
		Installation: catalog.InstallOnSite,
		Location:     catalog.LocationOther,
	}

	msg, err := NewFormatter(cat).Message(quote.Cabin(cat, in))
	require.NoError(t, err)

	assert.Contains(t, msg, "Tipo de panel: Poliuretano")
	assert.Contains(t, msg, "Tipo de puerta: Corredera")
	assert.Contains(t, msg, "Tipo de motor: 2.5 HP")
	assert.Contains(t, msg, "Dimensiones: 2m (Ancho) x 2.5m (Alto) x 4m (Largo)")
	assert.Contains(t, msg, "Entrega y servicio: Instalar fuera de Lima")
	assert.Contains(t, msg, "Total aprox: $")
}

func TestFormatter_CabinDelivery(t *testing.T) {
	assert.Equal(t, "Recoger en local", delivery(quote.CabinInput{Installation: catalog.InstallPickup, Location: catalog.LocationOther}))
	assert.Equal(t, "Instalar en Lima", delivery(quote.CabinInput{Installation: catalog.InstallOnSite, Location: catalog.LocationLima}))
}

func TestFormatter_OtherMotor(t *testing.T) {
	_, cat := newDispatcher(t)
	in := quote.DefaultCabinInput()
	in.Motor = catalog.MotorOtherHP

	msg, err := NewFormatter(cat).Message(quote.Cabin(cat, in))
	require.NoError(t, err)
	assert.Contains(t, msg, "Tipo de motor: Otra potencia")
}

func TestFormatter_Panels(t *testing.T) {
	_, cat := newDispatcher(t)
	f := NewFormatter(cat)

	roof, err := f.Message(quote.EPSRoof(cat, quote.EPSRoofInput{Quantity: 3}))
	require.NoError(t, err)
	assert.Contains(t, roof, "comprar 3 planchas de paneles EPS para techo (3.00m x 1.16m, 200mm)")
	assert.Contains(t, roof, "Total aprox: $")

	wall, err := f.Message(quote.EPSWall(cat, quote.EPSWallInput{Thickness: catalog.EPSThickness200, Length: 2.5}))
	require.NoError(t, err)
	assert.Contains(t, wall, "pared de 200mm, 2.5m de largo (ancho 1.16m)")

	pur, err := f.Message(quote.PUR(cat, quote.PURInput{Thickness: catalog.PURThickness150, Quantity: 2}))
	require.NoError(t, err)
	assert.Contains(t, pur, "2 planchas de panel PUR de 150mm")
}

func TestFormatter_DoorLeavesOnlyForSwing(t *testing.T) {
	_, cat := newDispatcher(t)
	f := NewFormatter(cat)

	swing, err := f.Message(quote.Door(cat, quote.DoorInput{Type: catalog.DoorVaiven, Width: 1, Height: 2, Leaves: 2}))
	require.NoError(t, err)
	assert.Contains(t, swing, "puerta tipo vaivén con 2 hoja(s) de 1m x 2m")

	hinged, err := f.Message(quote.Door(cat, quote.DoorInput{Type: catalog.DoorBatiente, Width: 1, Height: 2, Leaves: 2}))
	require.NoError(t, err)
	assert.NotContains(t, hinged, "hoja")
	assert.Contains(t, hinged, "La cotización es $")
}

func TestDispatcher_LinkRoundTrips(t *testing.T) {
	d, cat := newDispatcher(t)

	link, err := d.Link(context.Background(), quote.EPSRoof(cat, quote.EPSRoofInput{Quantity: 10}))
	require.NoError(t, err)

	assert.Equal(t, "51991038374", link.Phone)
	require.True(t, strings.HasPrefix(link.URL, "https://wa.me/51991038374?text="))
	assert.NotContains(t, link.URL, "+")

	parsed, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Equal(t, link.Message, parsed.Query().Get("text"))
}

func TestDispatcher_PhonePerProduct(t *testing.T) {
	d, cat := newDispatcher(t)

	cabin, err := d.Link(context.Background(), quote.Cabin(cat, quote.DefaultCabinInput()))
	require.NoError(t, err)
	assert.Equal(t, "51998691832", cabin.Phone)

	door, err := d.Link(context.Background(), quote.Door(cat, quote.DefaultDoorInput()))
	require.NoError(t, err)
	assert.Equal(t, "51991038374", door.Phone)
}

func TestDispatcher_CustomBaseURL(t *testing.T) {
	cat := catalog.MustNew(catalog.DefaultPrices())
	d := NewDispatcher("https://api.whatsapp.com/send", Phones{Panel: "1"}, NewFormatter(cat), logging.Nop())

	link, err := d.Link(context.Background(), quote.PUR(cat, quote.DefaultPURInput()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link.URL, "https://api.whatsapp.com/send/1?text="))
}

func TestEncodeText(t *testing.T) {
	assert.Equal(t, "Total%20aprox%3A%20%241%2C026.60", EncodeText("Total aprox: $1,026.60"))
	assert.Equal(t, "c%C3%A1mara", EncodeText("cámara"))
}
