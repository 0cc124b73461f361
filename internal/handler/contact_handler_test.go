package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error)
	calls      int
}

func (m *mockContactService) Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
	m.calls++
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return &model.ContactSubmission{ID: "sub-1"}, nil
}

func postContact(h *ContactHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v — body: %s", err, rec.Body.String())
	}
	return resp
}

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured model.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
			captured = in
			return &model.ContactSubmission{ID: "abc-123"}, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"name":"Alice","email":"alice@example.com","subject":"Oi","message":"Hello!"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if captured.Name == nil || *captured.Name != "Alice" {
		t.Errorf("expected name=Alice forwarded, got %v", captured.Name)
	}
	if captured.Subject == nil || *captured.Subject != "Oi" {
		t.Errorf("expected subject=Oi forwarded, got %v", captured.Subject)
	}

	resp := decodeBody(t, rec)
	if resp["success"] != true {
		t.Errorf("expected success=true, got %v", resp["success"])
	}
	if resp["message"] != "Mensagem enviada com sucesso!" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if resp["id"] != "abc-123" {
		t.Errorf("expected id=abc-123, got %v", resp["id"])
	}
}

// TestContactHandler_Submit_SubjectOmitted verifies an absent subject is forwarded as nil.
func TestContactHandler_Submit_SubjectOmitted(t *testing.T) {
	var captured model.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
			captured = in
			return &model.ContactSubmission{ID: "x"}, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"name":"Ana","email":"a@b.com","message":"Olá"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.Subject != nil {
		t.Errorf("expected nil subject, got %q", *captured.Subject)
	}
}

// TestContactHandler_Submit_NonStringFieldsAreAbsent verifies numbers, nulls and objects are dropped.
func TestContactHandler_Submit_NonStringFieldsAreAbsent(t *testing.T) {
	var captured model.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
			captured = in
			return nil, &service.ValidationError{Kind: service.KindMissingField}
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"name":42,"email":null,"subject":{"a":1},"message":["x"],"extra":"ignored"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if captured.Name != nil || captured.Email != nil || captured.Subject != nil || captured.Message != nil {
		t.Errorf("expected all fields absent, got %+v", captured)
	}
}

func TestContactHandler_Submit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		kind    service.ValidationKind
		wantMsg string
	}{
		{"missing field", service.KindMissingField, "Nome, email e mensagem são obrigatórios."},
		{"invalid email", service.KindInvalidEmail, "Formato de email inválido."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockContactService{
				submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
					return nil, &service.ValidationError{Kind: tt.kind}
				},
			}
			h := NewContactHandler(mock)

			rec := postContact(h, `{"name":"Ana","email":"x","message":"Olá"}`)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if resp := decodeBody(t, rec); resp["error"] != tt.wantMsg {
				t.Errorf("expected error=%q, got %v", tt.wantMsg, resp["error"])
			}
		})
	}
}

// TestContactHandler_Submit_InvalidJSON verifies that malformed bodies return 400 without calling the service.
func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	bodies := map[string]string{
		"syntax error":  "{bad json",
		"empty body":    "",
		"array":         `[{"name":"Ana"}]`,
		"string":        `"hello"`,
		"null":          "null",
		"trailing data": `{"name":"Ana"} {"name":"Bob"}`,
		"bad string":    `{"name":"\x"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			mock := &mockContactService{}
			h := NewContactHandler(mock)

			rec := postContact(h, body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400 for %q, got %d", body, rec.Code)
			}
			if resp := decodeBody(t, rec); resp["error"] != "Requisição inválida." {
				t.Errorf("unexpected error message: %v", resp["error"])
			}
			if mock.calls != 0 {
				t.Errorf("service must not be called for malformed body, called %d times", mock.calls)
			}
		})
	}
}

// TestContactHandler_Submit_BodyTooLarge verifies oversized bodies are rejected as malformed.
func TestContactHandler_Submit_BodyTooLarge(t *testing.T) {
	mock := &mockContactService{}
	h := NewContactHandler(mock)

	body, _ := json.Marshal(map[string]string{
		"name":    "Ana",
		"email":   "a@b.com",
		"message": strings.Repeat("a", maxBodyBytes),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized body, got %d", rec.Code)
	}
	if mock.calls != 0 {
		t.Error("service must not be called for oversized body")
	}
}

// TestContactHandler_Submit_ServiceError verifies that a store failure returns the generic 500.
func TestContactHandler_Submit_ServiceError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
			return nil, fmt.Errorf("%w: db connection lost", repository.ErrStoreUnavailable)
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"name":"Ana","email":"a@b.com","message":"Olá"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on service error, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["error"] != "Erro interno do servidor. Tente novamente mais tarde." {
		t.Errorf("unexpected error message: %v", resp["error"])
	}
	if strings.Contains(rec.Body.String(), "db connection lost") {
		t.Error("internal error details must not be exposed")
	}
}

// TestContactHandler_Submit_ContentTypeJSON verifies the response Content-Type header.
func TestContactHandler_Submit_ContentTypeJSON(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	for _, body := range []string{`{"name":"a","email":"t@e.com","message":"test"}`, "{bad"} {
		rec := postContact(h, body)
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type=application/json, got %q", ct)
		}
	}
}

// ---------------------------------------------------------------------------
// GET /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Status(t *testing.T) {
	mock := &mockContactService{}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["message"] != "Endpoint de contato funcionando" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if mock.calls != 0 {
		t.Error("liveness probe must not call the service")
	}
}
