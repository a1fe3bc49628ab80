package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/metrics"
	"production-api/internal/service/calculator"
)

type MaterialCalculator interface {
	RequiredMaterial(ctx context.Context, req calculator.MaterialRequest) (calculator.MaterialResult, error)
}

type MaterialRequest struct {
	ProductTypeID  int64   `json:"product_type_id"`
	MaterialTypeID int64   `json:"material_type_id"`
	Quantity       int     `json:"quantity"`
	Param1         float64 `json:"param1"`
	Param2         float64 `json:"param2"`
}

// MaterialResponse echoes the request. RequiredMaterial is -1 when Success is false.
type MaterialResponse struct {
	RequiredMaterial int64             `json:"required_material"`
	ProductTypeID    int64             `json:"product_type_id"`
	MaterialTypeID   int64             `json:"material_type_id"`
	Quantity         int               `json:"quantity"`
	Param1           float64           `json:"param1"`
	Param2           float64           `json:"param2"`
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	Reason           calculator.Reason `json:"reason,omitempty"`
}

const failureMessage = "Ошибка расчета: неверные данные или несуществующие типы"

func CalculateMaterial(log *slog.Logger, calc MaterialCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.calculator.CalculateMaterial"

		var req MaterialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		res, err := calc.RequiredMaterial(ctx, calculator.MaterialRequest{
			ProductTypeID:  req.ProductTypeID,
			MaterialTypeID: req.MaterialTypeID,
			Quantity:       req.Quantity,
			Param1:         req.Param1,
			Param2:         req.Param2,
		})
		if err != nil {
			log.Error("Failed to calculate material", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		resp := MaterialResponse{
			RequiredMaterial: -1,
			ProductTypeID:    req.ProductTypeID,
			MaterialTypeID:   req.MaterialTypeID,
			Quantity:         req.Quantity,
			Param1:           req.Param1,
			Param2:           req.Param2,
			Message:          failureMessage,
			Reason:           res.Reason,
		}

		if res.Success {
			resp.RequiredMaterial = res.Amount
			resp.Success = true
			resp.Message = fmt.Sprintf("Для производства %d единиц продукции потребуется %d единиц сырья", req.Quantity, res.Amount)
			metrics.MaterialCalculations.WithLabelValues("success").Inc()
		} else {
			metrics.MaterialCalculations.WithLabelValues(string(res.Reason)).Inc()
		}

		render.JSON(w, r, resp)
	}
}
