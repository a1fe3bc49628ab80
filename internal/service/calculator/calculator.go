package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"production-api/internal/storage"
)

// Storage is the read side of the entity store the calculations need. Lookups
// of absent records must return an error wrapping storage.ErrNotFound.
type Storage interface {
	GetProductType(ctx context.Context, id int64) (*storage.ProductType, error)
	GetMaterialType(ctx context.Context, id int64) (*storage.MaterialType, error)
	GetProduct(ctx context.Context, id int64) (*storage.Product, error)
	ListProductWorkshopsByProduct(ctx context.Context, productID int64) ([]*storage.ProductWorkshop, error)
	GetWorkshop(ctx context.Context, id int64) (*storage.Workshop, error)
}

var ErrProductNotFound = errors.New("product not found")

// Reason says why a material calculation did not produce an amount.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInvalidInput     Reason = "invalid_input"
	ReasonUnknownReference Reason = "unknown_reference"
	ReasonUndefinedFormula Reason = "undefined_formula"
)

type MaterialRequest struct {
	ProductTypeID  int64
	MaterialTypeID int64
	Quantity       int
	Param1         float64
	Param2         float64
}

// MaterialResult is either a successful amount or a failure with a reason.
// Amount is meaningful only when Success is true.
type MaterialResult struct {
	Amount  int64
	Success bool
	Reason  Reason
}

func failed(reason Reason) MaterialResult {
	return MaterialResult{Reason: reason}
}

type ProductionTime struct {
	ProductID     int64
	ProductName   string
	TotalHours    float64
	WorkshopCount int
}

type ProductWorkshopView struct {
	WorkshopID          int64    `json:"workshop_id"`
	WorkshopName        string   `json:"workshop_name"`
	WorkshopType        *string  `json:"workshop_type"`
	StaffCount          *int     `json:"staff_count"`
	ProductionTimeHours *float64 `json:"production_time_hours"`
}

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// RequiredMaterial computes how much raw material a production run needs:
// ceil(param1 * param2 * coefficient * quantity * (1 + loss/100)).
//
// Domain failures (bad input, unknown ids, null coefficient or loss) come back
// as an unsuccessful MaterialResult. The error is reserved for store failures.
func (s *Service) RequiredMaterial(ctx context.Context, req MaterialRequest) (MaterialResult, error) {
	const op = "service.calculator.RequiredMaterial"

	if req.Quantity <= 0 || !(req.Param1 > 0) || !(req.Param2 > 0) {
		return failed(ReasonInvalidInput), nil
	}

	var (
		productType  *storage.ProductType
		materialType *storage.MaterialType
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		productType, err = s.storage.GetProductType(gCtx, req.ProductTypeID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("product type: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		materialType, err = s.storage.GetMaterialType(gCtx, req.MaterialTypeID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("material type: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return MaterialResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if productType == nil || materialType == nil {
		return failed(ReasonUnknownReference), nil
	}

	if productType.Coefficient == nil || materialType.LossPercentage == nil {
		return failed(ReasonUndefinedFormula), nil
	}

	amount, ok := materialAmount(req, *productType.Coefficient, *materialType.LossPercentage)
	if !ok {
		return failed(ReasonInvalidInput), nil
	}

	return MaterialResult{Amount: amount, Success: true}, nil
}

// materialAmount applies the formula in float64 and rounds up. ok is false when
// the result cannot be represented as an integer amount.
func materialAmount(req MaterialRequest, coefficient, lossPercentage float64) (int64, bool) {
	basePerUnit := req.Param1 * req.Param2 * coefficient
	totalBase := basePerUnit * float64(req.Quantity)
	lossMultiplier := 1 + lossPercentage/100
	total := math.Ceil(totalBase * lossMultiplier)

	if math.IsNaN(total) || math.IsInf(total, 0) || total >= math.MaxInt64 || total < math.MinInt64 {
		return 0, false
	}

	return int64(total), true
}

// TotalProductionTime sums production hours over all workshop links of the
// product. Links without a time count as zero hours but still count as a workshop.
func (s *Service) TotalProductionTime(ctx context.Context, productID int64) (ProductionTime, error) {
	const op = "service.calculator.TotalProductionTime"

	product, err := s.product(ctx, productID)
	if err != nil {
		return ProductionTime{}, fmt.Errorf("%s: %w", op, err)
	}

	links, err := s.storage.ListProductWorkshopsByProduct(ctx, productID)
	if err != nil {
		return ProductionTime{}, fmt.Errorf("%s: %w", op, err)
	}

	total := decimal.Zero
	for _, link := range links {
		if link.ProductionTimeHours == nil {
			continue
		}
		total = total.Add(decimal.NewFromFloat(*link.ProductionTimeHours))
	}

	return ProductionTime{
		ProductID:     product.ID,
		ProductName:   product.Name,
		TotalHours:    total.InexactFloat64(),
		WorkshopCount: len(links),
	}, nil
}

// WorkshopsForProduct joins the product's workshop links with workshop
// attributes. Links pointing at a workshop that no longer exists are skipped.
func (s *Service) WorkshopsForProduct(ctx context.Context, productID int64) ([]ProductWorkshopView, error) {
	const op = "service.calculator.WorkshopsForProduct"

	if _, err := s.product(ctx, productID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	links, err := s.storage.ListProductWorkshopsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	workshops := make([]*storage.Workshop, len(links))

	g, gCtx := errgroup.WithContext(ctx)
	for i, link := range links {
		g.Go(func() error {
			w, err := s.storage.GetWorkshop(gCtx, link.WorkshopID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil
				}
				return fmt.Errorf("workshop id=%d: %w", link.WorkshopID, err)
			}
			workshops[i] = w
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := make([]ProductWorkshopView, 0, len(links))
	for i, link := range links {
		w := workshops[i]
		if w == nil {
			continue
		}

		views = append(views, ProductWorkshopView{
			WorkshopID:          w.ID,
			WorkshopName:        w.Name,
			WorkshopType:        w.WorkshopType,
			StaffCount:          w.StaffCount,
			ProductionTimeHours: link.ProductionTimeHours,
		})
	}

	return views, nil
}

func (s *Service) product(ctx context.Context, productID int64) (*storage.Product, error) {
	product, err := s.storage.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("id=%d: %w", productID, ErrProductNotFound)
		}
		return nil, err
	}

	return product, nil
}
