package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"production-api/internal/storage"
)

var ErrInvalidParam = errors.New("invalid parameter")

// IDParam reads a positive integer URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	return id, nil
}

// ListParams reads skip and limit from the query string. Missing values fall
// back to storage defaults; limit is capped at storage.MaxListLimit.
func ListParams(r *http.Request) (storage.ListParams, error) {
	params := storage.ListParams{Limit: storage.DefaultListLimit}

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return params, fmt.Errorf("%w: skip=%q", ErrInvalidParam, raw)
		}
		params.Skip = skip
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return params, fmt.Errorf("%w: limit=%q", ErrInvalidParam, raw)
		}
		params.Limit = min(limit, storage.MaxListLimit)
	}

	return params, nil
}

// StorageError writes the HTTP response for an error returned by the store.
// entity names the record kind in client-facing messages, e.g. "Workshop".
func StorageError(w http.ResponseWriter, log *slog.Logger, op string, entity string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, entity+" not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		http.Error(w, entity+" already exists", http.StatusBadRequest)
	case errors.Is(err, storage.ErrReferenceNotFound):
		http.Error(w, "Referenced record not found", http.StatusBadRequest)
	case errors.Is(err, storage.ErrReferenced):
		http.Error(w, entity+" is still referenced by other records", http.StatusBadRequest)
	default:
		log.With(slog.String("op", op), slog.String("error", err.Error())).Error("storage request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
