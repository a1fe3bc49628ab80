package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
)

type MaterialTypeDeleter interface {
	DeleteMaterialType(ctx context.Context, id int64) error
}

type Response struct {
	Message string `json:"message"`
}

func New(log *slog.Logger, deleter MaterialTypeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.material-type.delete.New"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteMaterialType(ctx, id); err != nil {
			api.StorageError(w, log, op, "Material type", err)
			return
		}

		render.JSON(w, r, Response{Message: "Material type deleted"})
	}
}
