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

type WorkshopProvider interface {
	GetWorkshop(ctx context.Context, id int64) (*storage.Workshop, error)
	ListWorkshops(ctx context.Context, params storage.ListParams) ([]*storage.Workshop, error)
}

func GetWorkshop(log *slog.Logger, provider WorkshopProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.get.GetWorkshop"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ws, err := provider.GetWorkshop(ctx, id)
		if err != nil {
			api.StorageError(w, log, op, "Workshop", err)
			return
		}

		render.JSON(w, r, ws)
	}
}

func ListWorkshops(log *slog.Logger, provider WorkshopProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.get.ListWorkshops"

		params, err := api.ListParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := provider.ListWorkshops(ctx, params)
		if err != nil {
			api.StorageError(w, log, op, "Workshop", err)
			return
		}

		render.JSON(w, r, items)
	}
}
