package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	import_excel "production-api/internal/service/import-excel"
)

type Importer interface {
	Import(ctx context.Context, kind import_excel.Kind, r io.Reader) (*import_excel.Report, error)
}

// ImportExcel accepts a multipart upload with the workbook in the "file"
// field and imports it as the entity kind named in the URL.
func ImportExcel(log *slog.Logger, imp Importer, maxUploadMB int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.import.ImportExcel"

		kind, err := import_excel.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		maxBytes := maxUploadMB << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "Файл слишком большой", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Ожидается multipart/form-data с полем file", http.StatusBadRequest)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Ожидается multipart/form-data с полем file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		report, err := imp.Import(ctx, kind, file)
		if err != nil {
			if errors.Is(err, import_excel.ErrInvalidWorkbook) || errors.Is(err, import_excel.ErrMissingColumn) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("failed to import workbook", slog.String("op", op), slog.String("kind", string(kind)), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("workbook imported",
			slog.String("kind", string(kind)),
			slog.Int("imported", report.Imported),
			slog.Int("skipped", report.Skipped),
		)

		render.JSON(w, r, report)
	}
}
