package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
)

type WorkshopDeleter interface {
	DeleteWorkshop(ctx context.Context, id int64) error
}

type Response struct {
	Message string `json:"message"`
}

// New deletes a workshop. A workshop still linked to products is rejected
// with 400 until its links are removed.
func New(log *slog.Logger, deleter WorkshopDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.delete.New"

		id, err := api.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteWorkshop(ctx, id); err != nil {
			api.StorageError(w, log, op, "Workshop", err)
			return
		}

		render.JSON(w, r, Response{Message: "Workshop deleted"})
	}
}
