package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"production-api/internal/service/calculator"
)

type MockProductionInfo struct {
	mock.Mock
}

func (m *MockProductionInfo) TotalProductionTime(ctx context.Context, productID int64) (calculator.ProductionTime, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(calculator.ProductionTime), args.Error(1)
}

func (m *MockProductionInfo) WorkshopsForProduct(ctx context.Context, productID int64) ([]calculator.ProductWorkshopView, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calculator.ProductWorkshopView), args.Error(1)
}

func newRouter(info ProductionInfo) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/calculator/total-production-time/{product_id}", TotalProductionTime(slog.Default(), info))
	r.Get("/api/calculator/workshops-for-product/{product_id}", WorkshopsForProduct(slog.Default(), info))
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestTotalProductionTime_Success(t *testing.T) {
	mockInfo := new(MockProductionInfo)
	mockInfo.On("TotalProductionTime", mock.Anything, int64(3)).Return(calculator.ProductionTime{
		ProductID:     3,
		ProductName:   "Ламинат Дуб дымчато-белый 33 класс 12 мм",
		TotalHours:    3.75,
		WorkshopCount: 3,
	}, nil)

	rr := get(newRouter(mockInfo), "/api/calculator/total-production-time/3")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ProductionTimeResponse
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, int64(3), resp.ProductID)
	assert.Equal(t, 3.75, resp.TotalProductionTimeHours)
	assert.Equal(t, 3, resp.WorkshopsCount)
	assert.Contains(t, rr.Body.String(), `"total_production_time_hours":3.75`)
}

func TestTotalProductionTime_NotFound(t *testing.T) {
	mockInfo := new(MockProductionInfo)
	mockInfo.On("TotalProductionTime", mock.Anything, int64(42)).
		Return(calculator.ProductionTime{}, fmt.Errorf("op: %w", calculator.ErrProductNotFound))

	rr := get(newRouter(mockInfo), "/api/calculator/total-production-time/42")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTotalProductionTime_BadID(t *testing.T) {
	mockInfo := new(MockProductionInfo)

	rr := get(newRouter(mockInfo), "/api/calculator/total-production-time/x")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockInfo.AssertNotCalled(t, "TotalProductionTime", mock.Anything, mock.Anything)
}

func TestWorkshopsForProduct_Success(t *testing.T) {
	hours := 1.2
	typ := "Обработка"
	staff := 4

	mockInfo := new(MockProductionInfo)
	mockInfo.On("WorkshopsForProduct", mock.Anything, int64(1)).Return([]calculator.ProductWorkshopView{
		{WorkshopID: 5, WorkshopName: "Сушильный", WorkshopType: &typ, StaffCount: &staff, ProductionTimeHours: &hours},
	}, nil)

	rr := get(newRouter(mockInfo), "/api/calculator/workshops-for-product/1")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []calculator.ProductWorkshopView
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Сушильный", resp[0].WorkshopName)
	assert.Equal(t, 4, *resp[0].StaffCount)
	assert.Equal(t, 1.2, *resp[0].ProductionTimeHours)
}

func TestWorkshopsForProduct_EmptyIsArray(t *testing.T) {
	mockInfo := new(MockProductionInfo)
	mockInfo.On("WorkshopsForProduct", mock.Anything, int64(2)).Return([]calculator.ProductWorkshopView{}, nil)

	rr := get(newRouter(mockInfo), "/api/calculator/workshops-for-product/2")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestWorkshopsForProduct_Errors(t *testing.T) {
	mockInfo := new(MockProductionInfo)
	mockInfo.On("WorkshopsForProduct", mock.Anything, int64(8)).
		Return(nil, fmt.Errorf("op: %w", calculator.ErrProductNotFound))
	mockInfo.On("WorkshopsForProduct", mock.Anything, int64(9)).
		Return(nil, errors.New("connection refused"))

	h := newRouter(mockInfo)

	assert.Equal(t, http.StatusNotFound, get(h, "/api/calculator/workshops-for-product/8").Code)
	assert.Equal(t, http.StatusInternalServerError, get(h, "/api/calculator/workshops-for-product/9").Code)
}
