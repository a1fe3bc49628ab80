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

type MaterialTypeCreator interface {
	CreateMaterialType(ctx context.Context, m storage.MaterialType) (int64, error)
}

type Request struct {
	Name           string   `json:"name"`
	LossPercentage *float64 `json:"loss_percentage"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.LossPercentage != nil && !(*r.LossPercentage >= 0) {
		return errors.New("loss_percentage must not be negative")
	}
	return nil
}

// MaterialType converts the request into a record with the given id.
func (r Request) MaterialType(id int64) storage.MaterialType {
	return storage.MaterialType{
		ID:             id,
		Name:           strings.TrimSpace(r.Name),
		LossPercentage: r.LossPercentage,
	}
}

func New(log *slog.Logger, creator MaterialTypeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.material-type.save.New"

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

		mt := req.MaterialType(0)
		id, err := creator.CreateMaterialType(ctx, mt)
		if err != nil {
			api.StorageError(w, log, op, "Material type", err)
			return
		}
		mt.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, mt)
	}
}
