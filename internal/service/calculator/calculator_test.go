package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"production-api/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetProductType(ctx context.Context, id int64) (*storage.ProductType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ProductType), args.Error(1)
}

func (m *MockStorage) GetMaterialType(ctx context.Context, id int64) (*storage.MaterialType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.MaterialType), args.Error(1)
}

func (m *MockStorage) GetProduct(ctx context.Context, id int64) (*storage.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Product), args.Error(1)
}

func (m *MockStorage) ListProductWorkshopsByProduct(ctx context.Context, productID int64) ([]*storage.ProductWorkshop, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.ProductWorkshop), args.Error(1)
}

func (m *MockStorage) GetWorkshop(ctx context.Context, id int64) (*storage.Workshop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Workshop), args.Error(1)
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func intPtr(v int) *int           { return &v }

func notFound(what string) error {
	return fmt.Errorf("storage.mysql.Get%s: %w", what, storage.ErrNotFound)
}

func newTypesMock(coefficient, loss *float64) *MockStorage {
	m := new(MockStorage)
	m.On("GetProductType", mock.Anything, int64(1)).
		Return(&storage.ProductType{ID: 1, Name: "Ламинат", Coefficient: coefficient}, nil)
	m.On("GetMaterialType", mock.Anything, int64(2)).
		Return(&storage.MaterialType{ID: 2, Name: "Пластик", LossPercentage: loss}, nil)
	return m
}

func TestRequiredMaterial_Example(t *testing.T) {
	m := newTypesMock(floatPtr(2.0), floatPtr(10))
	svc := NewService(m)

	res, err := svc.RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID:  1,
		MaterialTypeID: 2,
		Quantity:       10,
		Param1:         1.5,
		Param2:         2.0,
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, ReasonNone, res.Reason)
	assert.Equal(t, int64(66), res.Amount)
	m.AssertExpectations(t)
}

func TestRequiredMaterial_MatchesFormula(t *testing.T) {
	cases := []struct {
		coefficient float64
		loss        float64
		quantity    int
		p1, p2      float64
	}{
		{coefficient: 2.0, loss: 10, quantity: 10, p1: 1.5, p2: 2.0},
		{coefficient: 1.0, loss: 0, quantity: 1, p1: 1, p2: 1},
		{coefficient: 3.5, loss: 0.7, quantity: 7, p1: 0.33, p2: 12.4},
		{coefficient: 5.15, loss: 0.12, quantity: 1000, p1: 2.5, p2: 1.75},
		{coefficient: 0.5, loss: 99.9, quantity: 3, p1: 0.01, p2: 0.01},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("c=%v_l=%v_q=%d", tc.coefficient, tc.loss, tc.quantity), func(t *testing.T) {
			m := newTypesMock(floatPtr(tc.coefficient), floatPtr(tc.loss))
			svc := NewService(m)

			res, err := svc.RequiredMaterial(context.Background(), MaterialRequest{
				ProductTypeID:  1,
				MaterialTypeID: 2,
				Quantity:       tc.quantity,
				Param1:         tc.p1,
				Param2:         tc.p2,
			})
			require.NoError(t, err)
			require.True(t, res.Success)

			want := math.Ceil(tc.p1 * tc.p2 * tc.coefficient * float64(tc.quantity) * (1 + tc.loss/100))
			assert.Equal(t, int64(want), res.Amount)
		})
	}
}

func TestRequiredMaterial_RoundsUp(t *testing.T) {
	// 1 * 1 * 1.0 * 1 * 1.001 = 1.001 -> 2
	m := newTypesMock(floatPtr(1.0), floatPtr(0.1))
	svc := NewService(m)

	res, err := svc.RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID: 1, MaterialTypeID: 2, Quantity: 1, Param1: 1, Param2: 1,
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(2), res.Amount)
}

func TestRequiredMaterial_InvalidInput(t *testing.T) {
	cases := map[string]MaterialRequest{
		"zero quantity":     {ProductTypeID: 1, MaterialTypeID: 2, Quantity: 0, Param1: 1.5, Param2: 2.0},
		"negative quantity": {ProductTypeID: 1, MaterialTypeID: 2, Quantity: -3, Param1: 1.5, Param2: 2.0},
		"zero param1":       {ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: 0, Param2: 2.0},
		"negative param1":   {ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: -1, Param2: 2.0},
		"zero param2":       {ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: 1.5, Param2: 0},
		"negative param2":   {ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: 1.5, Param2: -0.5},
		"NaN param1":        {ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: math.NaN(), Param2: 2.0},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			m := new(MockStorage)
			svc := NewService(m)

			res, err := svc.RequiredMaterial(context.Background(), req)

			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, ReasonInvalidInput, res.Reason)
			m.AssertNotCalled(t, "GetProductType", mock.Anything, mock.Anything)
			m.AssertNotCalled(t, "GetMaterialType", mock.Anything, mock.Anything)
		})
	}
}

func TestRequiredMaterial_UnknownProductType(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProductType", mock.Anything, int64(99)).Return(nil, notFound("ProductType"))
	m.On("GetMaterialType", mock.Anything, int64(2)).
		Return(&storage.MaterialType{ID: 2, LossPercentage: floatPtr(10)}, nil)

	res, err := NewService(m).RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID: 99, MaterialTypeID: 2, Quantity: 10, Param1: 1.5, Param2: 2.0,
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonUnknownReference, res.Reason)
}

func TestRequiredMaterial_UnknownMaterialType(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProductType", mock.Anything, int64(1)).
		Return(&storage.ProductType{ID: 1, Coefficient: floatPtr(2)}, nil)
	m.On("GetMaterialType", mock.Anything, int64(42)).Return(nil, notFound("MaterialType"))

	res, err := NewService(m).RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID: 1, MaterialTypeID: 42, Quantity: 10, Param1: 1.5, Param2: 2.0,
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonUnknownReference, res.Reason)
}

func TestRequiredMaterial_NullCoefficient(t *testing.T) {
	m := newTypesMock(nil, floatPtr(10))

	res, err := NewService(m).RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: 1.5, Param2: 2.0,
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonUndefinedFormula, res.Reason)
}

func TestRequiredMaterial_NullLossPercentage(t *testing.T) {
	m := newTypesMock(floatPtr(2.0), nil)

	res, err := NewService(m).RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: 1.5, Param2: 2.0,
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonUndefinedFormula, res.Reason)
}

func TestRequiredMaterial_Overflow(t *testing.T) {
	m := newTypesMock(floatPtr(math.MaxFloat64), floatPtr(10))

	res, err := NewService(m).RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: 1e10, Param2: 1e10,
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonInvalidInput, res.Reason)
}

func TestRequiredMaterial_StoreError(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProductType", mock.Anything, int64(1)).Return(nil, errors.New("connection refused"))
	m.On("GetMaterialType", mock.Anything, int64(2)).
		Return(&storage.MaterialType{ID: 2, LossPercentage: floatPtr(10)}, nil).Maybe()

	res, err := NewService(m).RequiredMaterial(context.Background(), MaterialRequest{
		ProductTypeID: 1, MaterialTypeID: 2, Quantity: 10, Param1: 1.5, Param2: 2.0,
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, res.Success)
}

func TestTotalProductionTime_Sums(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(5)).Return(&storage.Product{ID: 5, Name: "Паркетная доска"}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(5)).Return([]*storage.ProductWorkshop{
		{ID: 1, ProductID: 5, WorkshopID: 1, ProductionTimeHours: floatPtr(1.5)},
		{ID: 2, ProductID: 5, WorkshopID: 2, ProductionTimeHours: nil},
		{ID: 3, ProductID: 5, WorkshopID: 3, ProductionTimeHours: floatPtr(2.25)},
	}, nil)

	pt, err := NewService(m).TotalProductionTime(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), pt.ProductID)
	assert.Equal(t, "Паркетная доска", pt.ProductName)
	assert.Equal(t, 3.75, pt.TotalHours)
	assert.Equal(t, 3, pt.WorkshopCount)
	m.AssertExpectations(t)
}

func TestTotalProductionTime_NoFloatDrift(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(5)).Return(&storage.Product{ID: 5, Name: "x"}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(5)).Return([]*storage.ProductWorkshop{
		{ID: 1, ProductionTimeHours: floatPtr(0.1)},
		{ID: 2, ProductionTimeHours: floatPtr(0.2)},
	}, nil)

	pt, err := NewService(m).TotalProductionTime(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 0.3, pt.TotalHours)
}

func TestTotalProductionTime_NoLinks(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(7)).Return(&storage.Product{ID: 7, Name: "Новинка"}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(7)).Return([]*storage.ProductWorkshop{}, nil)

	pt, err := NewService(m).TotalProductionTime(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 0.0, pt.TotalHours)
	assert.Equal(t, 0, pt.WorkshopCount)
}

func TestTotalProductionTime_ProductNotFound(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(404)).Return(nil, notFound("Product"))

	_, err := NewService(m).TotalProductionTime(context.Background(), 404)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProductNotFound)
	m.AssertNotCalled(t, "ListProductWorkshopsByProduct", mock.Anything, mock.Anything)
}

func TestTotalProductionTime_StoreError(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(5)).Return(&storage.Product{ID: 5}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(5)).Return(nil, errors.New("timeout"))

	_, err := NewService(m).TotalProductionTime(context.Background(), 5)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestWorkshopsForProduct_TwoLinks(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(3)).Return(&storage.Product{ID: 3, Name: "Ламинат"}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(3)).Return([]*storage.ProductWorkshop{
		{ID: 10, ProductID: 3, WorkshopID: 1, ProductionTimeHours: floatPtr(1.2)},
		{ID: 11, ProductID: 3, WorkshopID: 2, ProductionTimeHours: floatPtr(0.5)},
	}, nil)
	m.On("GetWorkshop", mock.Anything, int64(1)).Return(&storage.Workshop{
		ID: 1, Name: "Сушильный", WorkshopType: strPtr("Сушка"), StaffCount: intPtr(5),
	}, nil)
	m.On("GetWorkshop", mock.Anything, int64(2)).Return(&storage.Workshop{
		ID: 2, Name: "Упаковочный", WorkshopType: strPtr("Упаковка"), StaffCount: intPtr(3),
	}, nil)

	views, err := NewService(m).WorkshopsForProduct(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, int64(1), views[0].WorkshopID)
	assert.Equal(t, "Сушильный", views[0].WorkshopName)
	assert.Equal(t, "Сушка", *views[0].WorkshopType)
	assert.Equal(t, 5, *views[0].StaffCount)
	assert.Equal(t, 1.2, *views[0].ProductionTimeHours)

	assert.Equal(t, int64(2), views[1].WorkshopID)
	assert.Equal(t, "Упаковочный", views[1].WorkshopName)
	assert.Equal(t, 3, *views[1].StaffCount)
	assert.Equal(t, 0.5, *views[1].ProductionTimeHours)

	m.AssertExpectations(t)
}

func TestWorkshopsForProduct_NoLinks(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(3)).Return(&storage.Product{ID: 3}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(3)).Return([]*storage.ProductWorkshop{}, nil)

	views, err := NewService(m).WorkshopsForProduct(context.Background(), 3)

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestWorkshopsForProduct_SkipsMissingWorkshop(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(3)).Return(&storage.Product{ID: 3}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(3)).Return([]*storage.ProductWorkshop{
		{ID: 10, ProductID: 3, WorkshopID: 1},
		{ID: 11, ProductID: 3, WorkshopID: 77},
	}, nil)
	m.On("GetWorkshop", mock.Anything, int64(1)).Return(&storage.Workshop{ID: 1, Name: "Сушильный"}, nil)
	m.On("GetWorkshop", mock.Anything, int64(77)).Return(nil, notFound("Workshop"))

	views, err := NewService(m).WorkshopsForProduct(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Сушильный", views[0].WorkshopName)
	assert.Nil(t, views[0].ProductionTimeHours)
}

func TestWorkshopsForProduct_ProductNotFound(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(404)).Return(nil, notFound("Product"))

	views, err := NewService(m).WorkshopsForProduct(context.Background(), 404)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, views)
}

func TestWorkshopsForProduct_StoreError(t *testing.T) {
	m := new(MockStorage)
	m.On("GetProduct", mock.Anything, int64(3)).Return(&storage.Product{ID: 3}, nil)
	m.On("ListProductWorkshopsByProduct", mock.Anything, int64(3)).Return([]*storage.ProductWorkshop{
		{ID: 10, ProductID: 3, WorkshopID: 1},
	}, nil)
	m.On("GetWorkshop", mock.Anything, int64(1)).Return(nil, errors.New("bad connection"))

	_, err := NewService(m).WorkshopsForProduct(context.Background(), 3)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}
