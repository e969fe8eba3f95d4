package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/refripanel/quote-go/internal/domain/quote"
)

// Page is one page of the marketing site.
type Page struct {
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Title    string          `json:"title"`
	Products []quote.Product `json:"products,omitempty"`
}

// Pages lists the site pages in navigation order.
func Pages() []Page {
	return []Page{
		{Name: "home", Path: "/", Title: "Inicio"},
		{Name: "about", Path: "/about", Title: "Nosotros"},
		{Name: "panels", Path: "/panels", Title: "Paneles", Products: []quote.Product{quote.ProductEPSRoof, quote.ProductEPSWall, quote.ProductPUR}},
		{Name: "doors", Path: "/doors", Title: "Puertas", Products: []quote.Product{quote.ProductDoor}},
		{Name: "cameras", Path: "/cameras", Title: "Cámaras frigoríficas", Products: []quote.Product{quote.ProductCabin}},
	}
}

// Index lists every page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, Pages())
}

// Page describes a single page and the products quoted on it.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "page")
	if name == "api" {
		h.notFound(w, r)
		return
	}
	for _, p := range Pages() {
		if p.Name == name && p.Path != "/" {
			h.respond(w, r, http.StatusOK, p)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// NotFound answers API paths with the JSON 404 envelope and sends every
// other unknown path back home.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		h.notFound(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
