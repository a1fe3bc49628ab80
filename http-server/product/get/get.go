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

type ProductProvider interface {
	GetProduct(ctx context.Context, id int64) (*storage.Product, error)
	ListProducts(ctx context.Context, params storage.ListParams) ([]*storage.Product, error)
}

func GetProduct(log *slog.Logger, provider ProductProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.get.GetProduct"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := provider.GetProduct(ctx, id)
		if err != nil {
			api.StorageError(w, log, op, "Product", err)
			return
		}

		render.JSON(w, r, p)
	}
}

func ListProducts(log *slog.Logger, provider ProductProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.get.ListProducts"

		params, err := api.ListParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := provider.ListProducts(ctx, params)
		if err != nil {
			api.StorageError(w, log, op, "Product", err)
			return
		}

		render.JSON(w, r, items)
	}
}
