package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
	"production-api/internal/storage"
)

type ProductCreator interface {
	CreateProduct(ctx context.Context, p storage.Product) (int64, error)
}

type Request struct {
	Name          string   `json:"name"`
	ProductTypeID *int64   `json:"product_type_id"`
	Article       *string  `json:"article"`
	MinPrice      *float64 `json:"min_price"`
	MainMaterial  *string  `json:"main_material"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.ProductTypeID != nil && *r.ProductTypeID <= 0 {
		return errors.New("product_type_id must be positive")
	}
	if r.MinPrice != nil && !(*r.MinPrice >= 0) {
		return errors.New("min_price must not be negative")
	}
	return nil
}

func (r Request) Product(id int64) storage.Product {
	return storage.Product{
		ID:            id,
		Name:          strings.TrimSpace(r.Name),
		ProductTypeID: r.ProductTypeID,
		Article:       r.Article,
		MinPrice:      r.MinPrice,
		MainMaterial:  r.MainMaterial,
	}
}

func New(log *slog.Logger, creator ProductCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.save.New"

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

		p := req.Product(0)
		id, err := creator.CreateProduct(ctx, p)
		if err != nil {
			api.StorageError(w, log, op, "Product", err)
			return
		}
		p.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, p)
	}
}
