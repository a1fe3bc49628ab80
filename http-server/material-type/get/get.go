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

type MaterialTypeProvider interface {
	GetMaterialType(ctx context.Context, id int64) (*storage.MaterialType, error)
	ListMaterialTypes(ctx context.Context, params storage.ListParams) ([]*storage.MaterialType, error)
}

func GetMaterialType(log *slog.Logger, provider MaterialTypeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.material-type.get.GetMaterialType"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		mt, err := provider.GetMaterialType(ctx, id)
		if err != nil {
			api.StorageError(w, log, op, "Material type", err)
			return
		}

		render.JSON(w, r, mt)
	}
}

func ListMaterialTypes(log *slog.Logger, provider MaterialTypeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.material-type.get.ListMaterialTypes"

		params, err := api.ListParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := provider.ListMaterialTypes(ctx, params)
		if err != nil {
			api.StorageError(w, log, op, "Material type", err)
			return
		}

		render.JSON(w, r, items)
	}
}
