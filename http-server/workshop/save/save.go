package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"production-api/internal/lib/api"
	"production-api/internal/storage"
)

type WorkshopCreator interface {
	CreateWorkshop(ctx context.Context, w storage.Workshop) (int64, error)
}

type Request struct {
	Name         string  `json:"name"`
	WorkshopType *string `json:"workshop_type"`
	StaffCount   *int    `json:"staff_count"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.StaffCount != nil && *r.StaffCount < 0 {
		return errors.New("staff_count must not be negative")
	}
	return nil
}

func (r Request) Workshop(id int64) storage.Workshop {
	return storage.Workshop{
		ID:           id,
		Name:         strings.TrimSpace(r.Name),
		WorkshopType: r.WorkshopType,
		StaffCount:   r.StaffCount,
	}
}

func New(log *slog.Logger, creator WorkshopCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.save.New"

		var req Request
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

		ws := req.Workshop(0)
		id, err := creator.CreateWorkshop(ctx, ws)
		if err != nil {
			api.StorageError(w, log, op, "Workshop", err)
			return
		}
		ws.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, ws)
	}
}
