package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// maxBodyBytes caps the size of a contact request body.
const maxBodyBytes = 64 << 10

// Caller-facing messages. Validation messages come from service.ValidationError.
const (
	msgSubmitted      = "Mensagem enviada com sucesso!"
	msgInvalidRequest = "Requisição inválida."
	msgInternalError  = "Erro interno do servidor. Tente novamente mais tarde."
	msgLiveness       = "Endpoint de contato funcionando"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// textField is a JSON value that is kept only when it is a string.
// Numbers, booleans, objects, arrays and null all decode as absent.
type textField struct {
	value *string
}

func (f *textField) UnmarshalJSON(b []byte) error {
	f.value = nil
	if len(b) == 0 || b[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	f.value = &s
	return nil
}

// submitRequest is the expected JSON body for POST /api/contact.
// Unknown fields are ignored.
type submitRequest struct {
	Name    textField `json:"name"`
	Email   textField `json:"email"`
	Subject textField `json:"subject"`
	Message textField `json:"message"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// name, email and message are required; subject falls back to a default.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmitRequest(w, r)
	if err != nil {
		ContactSubmissionsTotal.WithLabelValues(outcomeMalformed).Inc()
		slog.InfoContext(r.Context(), "malformed contact request",
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidRequest})
		return
	}

	sub, err := h.contactService.Submit(r.Context(), model.ContactInput{
		Name:    req.Name.value,
		Email:   req.Email.value,
		Subject: req.Subject.value,
		Message: req.Message.value,
	})

	var verr *service.ValidationError
	switch {
	case err == nil:
		ContactSubmissionsTotal.WithLabelValues(outcomeCreated).Inc()
		slog.InfoContext(r.Context(), "contact submission created",
			"id", sub.ID,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusCreated, submitResponse{
			Success: true,
			Message: msgSubmitted,
			ID:      sub.ID,
		})
	case errors.As(err, &verr):
		if verr.Kind == service.KindInvalidEmail {
			ContactSubmissionsTotal.WithLabelValues(outcomeInvalidEmail).Inc()
		} else {
			ContactSubmissionsTotal.WithLabelValues(outcomeMissingField).Inc()
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
	default:
		ContactSubmissionsTotal.WithLabelValues(outcomeStoreError).Inc()
		slog.ErrorContext(r.Context(), "failed to process contact submission",
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternalError})
	}
}

// Status handles GET /api/contact, a liveness probe with no side effects.
func (h *ContactHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: msgLiveness})
}

// decodeSubmitRequest reads exactly one JSON object from the capped body.
func decodeSubmitRequest(w http.ResponseWriter, r *http.Request) (*submitRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if b := bytes.TrimSpace(body); len(b) == 0 || b[0] != '{' {
		return nil, errors.New("body is not a JSON object")
	}

	var req submitRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return &req, nil
}
