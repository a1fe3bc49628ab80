package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"production-api/internal/config"
	"production-api/internal/service/calculator"
	reportsvc "production-api/internal/service/generate-excel"
	import_excel "production-api/internal/service/import-excel"
	"production-api/internal/storage/mysql"
)

// testRouter wires the real routes over a storage that is never reached:
// every request below is answered before any store call.
func testRouter(metricsEnabled bool) http.Handler {
	cfg := config.Config{
		CORS:    config.CORS{AllowedOrigins: []string{"http://localhost:5173"}},
		Metrics: config.Metrics{Enabled: metricsEnabled},
		Import:  config.Import{MaxUploadMB: 1},
	}

	var storage *mysql.Storage
	calc := calculator.NewService(storage)

	return routes(cfg, slog.Default(), storage, calc,
		import_excel.NewImportService(storage), reportsvc.NewGenerateService(storage, calc))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRoutes_Health(t *testing.T) {
	rr := serve(testRouter(false), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRoutes_Index(t *testing.T) {
	rr := serve(testRouter(false), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp indexResponse
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "/api/calculator", resp.Endpoints["calculator"])
}

func TestRoutes_Metrics(t *testing.T) {
	h := testRouter(true)
	serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `production_http_request_duration_seconds_count{method="GET",route="/health",status="200"}`)

	rr = serve(testRouter(false), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRoutes_BadIDNeverReachesStorage(t *testing.T) {
	h := testRouter(false)

	for _, path := range []string{
		"/api/material-types/abc",
		"/api/product-types/0",
		"/api/workshops/-1",
		"/api/products/x",
		"/api/product-workshops/1.5",
		"/api/calculator/total-production-time/x",
		"/api/calculator/workshops-for-product/x",
	} {
		rr := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestRoutes_UnknownImportKind(t *testing.T) {
	rr := serve(testRouter(false), httptest.NewRequest(http.MethodPost, "/api/import/orders", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutes_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := serve(testRouter(false), req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
