package calculator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
	"production-api/internal/service/calculator"
)

type ProductionInfo interface {
	TotalProductionTime(ctx context.Context, productID int64) (calculator.ProductionTime, error)
	WorkshopsForProduct(ctx context.Context, productID int64) ([]calculator.ProductWorkshopView, error)
}

type ProductionTimeResponse struct {
	ProductID                int64   `json:"product_id"`
	ProductName              string  `json:"product_name"`
	TotalProductionTimeHours float64 `json:"total_production_time_hours"`
	WorkshopsCount           int     `json:"workshops_count"`
}

func TotalProductionTime(log *slog.Logger, info ProductionInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.calculator.TotalProductionTime"

		productID, err := api.IDParam(r, "product_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pt, err := info.TotalProductionTime(ctx, productID)
		if err != nil {
			if errors.Is(err, calculator.ErrProductNotFound) {
				http.Error(w, "Продукт не найден", http.StatusNotFound)
				return
			}
			log.Error("Failed to calculate production time",
				slog.String("op", op), slog.Int64("product_id", productID), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ProductionTimeResponse{
			ProductID:                pt.ProductID,
			ProductName:              pt.ProductName,
			TotalProductionTimeHours: pt.TotalHours,
			WorkshopsCount:           pt.WorkshopCount,
		})
	}
}

func WorkshopsForProduct(log *slog.Logger, info ProductionInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.calculator.WorkshopsForProduct"

		productID, err := api.IDParam(r, "product_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		views, err := info.WorkshopsForProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, calculator.ErrProductNotFound) {
				http.Error(w, "Продукт не найден", http.StatusNotFound)
				return
			}
			log.Error("Failed to list workshops for product",
				slog.String("op", op), slog.Int64("product_id", productID), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, views)
	}
}
