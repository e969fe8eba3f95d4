// Package handler contains the HTTP handlers of the quote API and its
// route table.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/refripanel/quote-go/internal/application/contact"
	"github.com/refripanel/quote-go/internal/application/dto"
	"github.com/refripanel/quote-go/internal/application/form"
	"github.com/refripanel/quote-go/internal/application/port"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/refripanel/quote-go/internal/domain/repository"
)

// Handler serves the quote API.
type Handler struct {
	forms       *form.Service
	dispatcher  *contact.Dispatcher
	log         port.Logger
	placeholder string
	version     string
	startedAt   time.Time
}

// Options configures a Handler.
type Options struct {
	// ImagePlaceholder is advertised with the catalog
	ImagePlaceholder string

	// Version is reported by /health and in response metadata
	Version string
}

// New creates a Handler.
//
// Parameters:
//   - forms: the form service
//   - dispatcher: builds contact links
//   - log: application logger
//   - opts: display options
//
// Returns:
//   - *Handler: the handler
func New(forms *form.Service, dispatcher *contact.Dispatcher, log port.Logger, opts Options) *Handler {
	return &Handler{
		forms:       forms,
		dispatcher:  dispatcher,
		log:         log,
		placeholder: opts.ImagePlaceholder,
		version:     opts.Version,
		startedAt:   time.Now(),
	}
}

// Health reports liveness and whether the session store answers. A failing
// store answers 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	store := dto.HealthCheckResult{Status: "healthy"}
	if err := h.forms.CheckStore(r.Context()); err != nil {
		h.log.WithContext(r.Context()).Warn("Session store health check failed", "error", err)
		store = dto.HealthCheckResult{Status: "unhealthy", Message: err.Error()}
	}
	store.ResponseTime = time.Since(start).Milliseconds()

	status, code := "healthy", http.StatusOK
	if store.Status != "healthy" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	render.Status(r, code)
	render.JSON(w, r, dto.HealthResponse{
		Status:  status,
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
		Checks:  map[string]dto.HealthCheckResult{"session_store": store},
	})
}

// Catalog lists the options and prices the forms are built from.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, dto.NewCatalogResponse(h.forms.Catalog(), h.placeholder))
}

// Quote prices a form without a session. It is called on every input change.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q, ok := h.quoteFromBody(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK, dto.NewQuoteResponse(q))
}

// QuoteContact validates a form and returns its contact link. With
// ?redirect=true the client is sent straight to the chat.
func (h *Handler) QuoteContact(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bindQuote(w, r)
	if !ok {
		return
	}
	if err := h.forms.ValidateInput(req.Input()); err != nil {
		h.log.WithContext(r.Context()).Warn("Contact blocked by incomplete form", "error", err)
		h.respondError(w, r, err)
		return
	}
	q, err := h.forms.Quote(req.Input())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.contact(w, r, q)
}

// OpenSession opens a form session for a product.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	req := &dto.OpenSessionRequest{}
	if err := bind(r, req); err != nil {
		h.respondError(w, r, err)
		return
	}

	state, err := h.forms.Open(r.Context(), req.ProductLine())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/sessions/"+state.Session.ID.String())
	h.respond(w, r, http.StatusCreated, dto.NewSessionResponse(state.Session, state.Quote))
}

// GetSession returns a session with a fresh breakdown.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.forms.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, dto.NewSessionResponse(state.Session, state.Quote))
}

// ApplyChanges applies form edits in order and returns the recomputed state.
func (h *Handler) ApplyChanges(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req := &dto.ApplyChangesRequest{}
	if err := bind(r, req); err != nil {
		h.respondError(w, r, err)
		return
	}

	state, err := h.forms.Apply(r.Context(), id, req.Changes)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, dto.NewSessionResponse(state.Session, state.Quote))
}

// SessionContact is the "request quote" action of a session.
func (h *Handler) SessionContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.forms.Submit(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.contact(w, r, state.Quote)
}

// DiscardSession drops a session.
func (h *Handler) DiscardSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.forms.Discard(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request, q quote.Quote) {
	link, err := h.dispatcher.Link(r.Context(), q)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if r.URL.Query().Get("redirect") == "true" {
		http.Redirect(w, r, link.URL, http.StatusSeeOther)
		return
	}
	h.respond(w, r, http.StatusOK, dto.ContactResponse{
		Product: link.Product,
		Phone:   link.Phone,
		Message: link.Message,
		URL:     link.URL,
		Quote:   dto.NewQuoteResponse(q),
	})
}

func (h *Handler) quoteFromBody(w http.ResponseWriter, r *http.Request) (quote.Quote, bool) {
	req, ok := h.bindQuote(w, r)
	if !ok {
		return nil, false
	}
	q, err := h.forms.Quote(req.Input())
	if err != nil {
		h.respondError(w, r, err)
		return nil, false
	}
	h.log.WithContext(r.Context()).Debug("Quote recomputed",
		"product", q.Product(),
		"total", q.Summary().Total.String(),
	)
	return q, true
}

func (h *Handler) bindQuote(w http.ResponseWriter, r *http.Request) (dto.QuoteRequest, bool) {
	product, err := quote.ParseProduct(chi.URLParam(r, "product"))
	if err != nil {
		h.notFound(w, r)
		return nil, false
	}
	req := dto.NewQuoteRequest(product)
	if err := bind(r, req); err != nil {
		h.respondError(w, r, err)
		return nil, false
	}
	return req, true
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, repository.ErrSessionNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, dto.NewErrorResponse[any]("NOT_FOUND", "The requested resource was not found").WithMeta(h.meta(r)))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, dto.NewErrorResponse[any]("METHOD_NOT_ALLOWED", "The requested method is not allowed for this resource").WithMeta(h.meta(r)))
}
