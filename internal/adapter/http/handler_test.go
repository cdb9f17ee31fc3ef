package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"credit-approval-backend/internal/testutil/creditscoremock"
	"credit-approval-backend/internal/testutil/customermock"
	"credit-approval-backend/internal/testutil/loanmock"
	ucStatus "credit-approval-backend/internal/usecase/status"

	"github.com/labstack/echo/v4"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func jsonRequest(e *echo.Echo, method, path string, body any) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func rawRequest(e *echo.Echo, method, path, raw string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return er
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type pingFn func(ctx context.Context) error

func (f pingFn) PingContext(ctx context.Context) error { return f(ctx) }

func countOf(n int64) func(context.Context) (int64, error) {
	return func(context.Context) (int64, error) { return n, nil }
}

func newStatusUsecase(ping error) *ucStatus.Usecase {
	return ucStatus.NewUsecase(
		pingFn(func(context.Context) error { return ping }),
		&customermock.Repo{CountFn: countOf(3)},
		&loanmock.Repo{CountFn: countOf(7)},
		&creditscoremock.Repo{CountFn: countOf(2)},
		"test",
	)
}

// -------- tests --------

func TestHealth_ReturnsOKWithRFC3339NanoUTC(t *testing.T) {
	e := echo.New()
	h := NewHandler(newStatusUsecase(nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	start := time.Now().UTC()

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	ct := rec.Header().Get(echo.HeaderContentType)
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Time    string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}

	if body.Status != "healthy" || body.Service != serviceName {
		t.Fatalf("unexpected body: %+v", body)
	}

	parsed, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", parsed.Location())
	}
	now := time.Now().UTC()
	if parsed.Before(start.Add(-2*time.Second)) || parsed.After(now.Add(2*time.Second)) {
		t.Fatalf("time not within expected window: parsed=%v start=%v now=%v", parsed, start, now)
	}
}

func TestStatus_Healthy(t *testing.T) {
	e := echo.New()
	h := NewHandler(newStatusUsecase(nil))

	c, rec := jsonRequest(e, http.MethodGet, "/status", nil)
	if err := h.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got ucStatus.StatusDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Database != ucStatus.DBConnected || got.Version != "test" {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.Services == nil || got.Services.Customers != 3 || got.Services.Loans != 7 || got.Services.CreditScores != 2 {
		t.Fatalf("unexpected counts: %+v", got.Services)
	}
}

func TestStatus_DatabaseDownIs503(t *testing.T) {
	e := echo.New()
	h := NewHandler(newStatusUsecase(errors.New("connection refused")))

	c, rec := jsonRequest(e, http.MethodGet, "/status", nil)
	if err := h.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var got ucStatus.StatusDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != ucStatus.StateUnhealthy || got.Database != ucStatus.DBDisconnected {
		t.Fatalf("unexpected dto: %+v", got)
	}
}
