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

type ProductTypeCreator interface {
	CreateProductType(ctx context.Context, pt storage.ProductType) (int64, error)
}

type Request struct {
	Name        string   `json:"name"`
	Coefficient *float64 `json:"coefficient"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

func (r Request) ProductType(id int64) storage.ProductType {
	return storage.ProductType{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Coefficient: r.Coefficient,
	}
}

func New(log *slog.Logger, creator ProductTypeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-type.save.New"

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

		pt := req.ProductType(0)
		id, err := creator.CreateProductType(ctx, pt)
		if err != nil {
			api.StorageError(w, log, op, "Product type", err)
			return
		}
		pt.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, pt)
	}
}
