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

type ProductWorkshopProvider interface {
	GetProductWorkshop(ctx context.Context, id int64) (*storage.ProductWorkshop, error)
	ListProductWorkshops(ctx context.Context, params storage.ListParams) ([]*storage.ProductWorkshop, error)
}

func GetProductWorkshop(log *slog.Logger, provider ProductWorkshopProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-workshop.get.GetProductWorkshop"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pw, err := provider.GetProductWorkshop(ctx, id)
		if err != nil {
			api.StorageError(w, log, op, "Product workshop link", err)
			return
		}

		render.JSON(w, r, pw)
	}
}

func ListProductWorkshops(log *slog.Logger, provider ProductWorkshopProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-workshop.get.ListProductWorkshops"

		params, err := api.ListParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := provider.ListProductWorkshops(ctx, params)
		if err != nil {
			api.StorageError(w, log, op, "Product workshop link", err)
			return
		}

		render.JSON(w, r, items)
	}
}
