package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/http-server/product/save"
	"production-api/internal/lib/api"
	"production-api/internal/storage"
)

type ProductUpdater interface {
	UpdateProduct(ctx context.Context, p storage.Product) error
}

func New(log *slog.Logger, updater ProductUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.update.New"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req save.Request
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

		p := req.Product(id)
		if err := updater.UpdateProduct(ctx, p); err != nil {
			api.StorageError(w, log, op, "Product", err)
			return
		}

		render.JSON(w, r, p)
	}
}
