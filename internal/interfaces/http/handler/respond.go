package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/refripanel/quote-go/internal/application/dto"
	"github.com/refripanel/quote-go/internal/application/form"
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/refripanel/quote-go/internal/domain/repository"
	"github.com/refripanel/quote-go/internal/interfaces/http/middleware"
)

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("malformed request body")

// bind decodes a JSON body into v and runs its Bind. An empty body binds
// the zero request, so a form can be priced with its defaults.
func bind(r *http.Request, v render.Binder) error {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return v.Bind(r)
	}

	err := render.Bind(r, v)
	if errors.Is(err, io.EOF) {
		return v.Bind(r)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Join(errBadRequest, err)
	}
	return err
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, dto.NewSuccessResponse(data).WithMeta(h.meta(r)))
}

func (h *Handler) meta(r *http.Request) *dto.ResponseMeta {
	return &dto.ResponseMeta{
		RequestID: middleware.GetRequestID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	}
}

// respondError maps domain errors to HTTP statuses and the error envelope.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		fields := make([]dto.ValidationError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.ValidationError{
				Field:   f.Field,
				Rule:    f.Rule,
				Message: f.Message(),
				Value:   f.Value,
			})
		}
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, dto.NewValidationErrorResponse[any](fields).WithMeta(h.meta(r)))
		return
	}

	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, errBadRequest):
		status, code, message = http.StatusBadRequest, "BAD_REQUEST", "Request body is not valid JSON"
	case errors.Is(err, catalog.ErrUnknownOption):
		status, code, message = http.StatusUnprocessableEntity, "UNKNOWN_OPTION", err.Error()
	case errors.Is(err, entity.ErrUnknownField):
		status, code, message = http.StatusUnprocessableEntity, "UNKNOWN_FIELD", err.Error()
	case errors.Is(err, quote.ErrUnknownProduct):
		status, code, message = http.StatusUnprocessableEntity, "UNKNOWN_PRODUCT", err.Error()
	case errors.Is(err, dto.ErrNoChanges):
		status, code, message = http.StatusUnprocessableEntity, "NO_CHANGES", err.Error()
	case repository.IsNotFoundError(err):
		status, code, message = http.StatusNotFound, "SESSION_NOT_FOUND", "Form session not found or expired"
	case repository.IsConflictError(err):
		status, code, message = http.StatusConflict, "CONFLICT", "Form session was modified concurrently, reload it"
	default:
		h.log.WithContext(r.Context()).Error("Request failed",
			"path", r.URL.Path,
			"error", err,
		)
	}

	render.Status(r, status)
	render.JSON(w, r, dto.NewErrorResponse[any](code, message).WithMeta(h.meta(r)))
}
