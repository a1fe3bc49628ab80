package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
)

type ProductWorkshopDeleter interface {
	DeleteProductWorkshop(ctx context.Context, id int64) error
}

type Response struct {
	Message string `json:"message"`
}

func New(log *slog.Logger, deleter ProductWorkshopDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-workshop.delete.New"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteProductWorkshop(ctx, id); err != nil {
			api.StorageError(w, log, op, "Product workshop link", err)
			return
		}

		render.JSON(w, r, Response{Message: "Product workshop link deleted"})
	}
}
