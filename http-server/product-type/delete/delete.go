package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
)

type ProductTypeDeleter interface {
	DeleteProductType(ctx context.Context, id int64) error
}

type Response struct {
	Message string `json:"message"`
}

// New deletes a product type. Products of that type keep existing with an
// empty product_type_id.
func New(log *slog.Logger, deleter ProductTypeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product-type.delete.New"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteProductType(ctx, id); err != nil {
			api.StorageError(w, log, op, "Product type", err)
			return
		}

		render.JSON(w, r, Response{Message: "Product type deleted"})
	}
}
