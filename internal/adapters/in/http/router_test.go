package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apihttp "printshop/internal/adapters/in/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRouter wires a server with zero-value handlers. Every request in this
// file is answered by middleware before a handler would run.
func newRouter(t *testing.T) *echo.Echo {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := apihttp.NewRouter(context.Background(), apihttp.NewServer(apihttp.Handlers{}, logger),
		prometheus.NewRegistry(), logger)
	require.NoError(t, err)
	return e
}

func serve(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apihttp.Error {
	t.Helper()
	var body apihttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func identity(role string) map[string]string {
	return map[string]string{apihttp.HeaderUserID: "7", apihttp.HeaderUserRole: role}
}

func TestLoadOpenAPI_EmbeddedDocumentIsValid(t *testing.T) {
	doc, err := apihttp.LoadOpenAPI(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/budgets/{id}/convert"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/budgets/stranded"))
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e := newRouter(t)

	health := serve(e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "Healthy", health.Body.String())

	metrics := serve(e, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, metrics.Code)

	doc := serve(e, http.MethodGet, "/openapi.yaml", "", nil)
	assert.Equal(t, http.StatusOK, doc.Code)
	assert.Contains(t, doc.Body.String(), "openapi: 3.0.3")

	assert.NotEmpty(t, health.Header().Get(echo.HeaderXRequestID))
}

func TestRouter_MissingIdentity_Returns401(t *testing.T) {
	e := newRouter(t)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers", nil},
		{"no role", map[string]string{apihttp.HeaderUserID: "7"}},
		{"unknown role", identity("SUPERUSER")},
		{"non numeric id", map[string]string{apihttp.HeaderUserID: "seven", apihttp.HeaderUserRole: "ADMIN"}},
		{"zero id", map[string]string{apihttp.HeaderUserID: "0", apihttp.HeaderUserRole: "ADMIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, http.MethodPost, "/api/v1/budgets/1/submit", "", tt.headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, http.StatusUnauthorized, body.Code)
			assert.Equal(t, "unauthenticated", body.Kind)
		})
	}
}

func TestRouter_RequestsOutsideTheDocument_Return422(t *testing.T) {
	e := newRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"non numeric id", http.MethodGet, "/api/v1/budgets/abc", ""},
		{"zero id", http.MethodPost, "/api/v1/budgets/0/approve", ""},
		{"missing quote", http.MethodPost, "/api/v1/budgets", `{"observations":"x"}`},
		{"empty title", http.MethodPost, "/api/v1/orders", `{"quote":{"title":"","runSize":10}}`},
		{"zero run size", http.MethodPost, "/api/v1/orders", `{"quote":{"title":"Flyers","runSize":0}}`},
		{"numeric price", http.MethodPost, "/api/v1/orders", `{"quote":{"title":"Flyers","runSize":10,"unitPrice":1.5}}`},
		{"price with three decimals", http.MethodPost, "/api/v1/orders", `{"quote":{"title":"Flyers","runSize":10,"unitPrice":"0.125"}}`},
		{"price beyond twelve digits", http.MethodPost, "/api/v1/orders", `{"quote":{"title":"Flyers","runSize":10,"totalPrice":"1000000000000"}}`},
		{"unknown order status", http.MethodPatch, "/api/v1/orders/3/status", `{"status":"SHIPPED"}`},
		{"bad duration", http.MethodGet, "/api/v1/budgets/stranded?olderThan=soon", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body, identity("ADMIN"))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "validation_failed", decodeError(t, rec).Kind)
		})
	}
}
