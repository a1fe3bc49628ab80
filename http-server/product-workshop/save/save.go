package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
	"production-api/internal/storage"
)

type ProductWorkshopCreator interface {
	CreateProductWorkshop(ctx context.Context, pw storage.ProductWorkshop) (int64, error)
}

type Request struct {
	ProductID           int64    `json:"product_id"`
	WorkshopID          int64    `json:"workshop_id"`
	ProductionTimeHours *float64 `json:"production_time_hours"`
}

func (r Request) Validate() error {
	if r.ProductID <= 0 || r.WorkshopID <= 0 {
		return errors.New("product_id and workshop_id are required")
	}
	if r.ProductionTimeHours != nil && !(*r.ProductionTimeHours >= 0) {
		return errors.New("production_time_hours must not be negative")
	}
	return nil
}

func (r Request) ProductWorkshop(id int64) storage.ProductWorkshop {
	return storage.ProductWorkshop{
		ID:                  id,
		ProductID:           r.ProductID,
		WorkshopID:          r.WorkshopID,
		ProductionTimeHours: r.ProductionTimeHours,
	}
}

// New links a product to a workshop. A second link for the same pair and a
// link to a missing product or workshop are both rejected with 400.
func New(log *slog.Logger, creator ProductWorkshopCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-workshop.save.New"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Неверный JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pw := req.ProductWorkshop(0)
		id, err := creator.CreateProductWorkshop(ctx, pw)
		if err != nil {
			api.StorageError(w, log, op, "Product workshop link", err)
			return
		}
		pw.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, pw)
	}
}
