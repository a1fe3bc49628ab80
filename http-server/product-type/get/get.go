package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
	"production-api/internal/storage"
)

type ProductTypeProvider interface {
	GetProductType(ctx context.Context, id int64) (*storage.ProductType, error)
	ListProductTypes(ctx context.Context, params storage.ListParams) ([]*storage.ProductType, error)
}

func GetProductType(log *slog.Logger, provider ProductTypeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-type.get.GetProductType"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pt, err := provider.GetProductType(ctx, id)
		if err != nil {
			api.StorageError(w, log, op, "Product type", err)
			return
		}

		render.JSON(w, r, pt)
	}
}

func ListProductTypes(log *slog.Logger, provider ProductTypeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-type.get.ListProductTypes"

		params, err := api.ListParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := provider.ListProductTypes(ctx, params)
		if err != nil {
			api.StorageError(w, log, op, "Product type", err)
			return
		}

		render.JSON(w, r, items)
	}
}
