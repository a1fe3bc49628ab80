package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
)

type ProductDeleter interface {
	DeleteProduct(ctx context.Context, id int64) error
}

type Response struct {
	Message string `json:"message"`
}

// New deletes a product together with its workshop links.
func New(log *slog.Logger, deleter ProductDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.delete.New"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteProduct(ctx, id); err != nil {
			api.StorageError(w, log, op, "Product", err)
			return
		}

		render.JSON(w, r, Response{Message: "Product deleted"})
	}
}
