package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/http-server/material-type/save"
	"production-api/internal/lib/api"
	"production-api/internal/storage"
)

type MaterialTypeUpdater interface {
	UpdateMaterialType(ctx context.Context, m storage.MaterialType) error
}

// New replaces every field of an existing material type.
func New(log *slog.Logger, updater MaterialTypeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.material-type.update.New"

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

		mt := req.MaterialType(id)
		if err := updater.UpdateMaterialType(ctx, mt); err != nil {
			api.StorageError(w, log, op, "Material type", err)
			return
		}

		render.JSON(w, r, mt)
	}
}
