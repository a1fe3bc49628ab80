package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"
	calchandler "production-api/http-server/calculator"
	generate_excel "production-api/http-server/generate-report/generate-excel"
	"production-api/http-server/import/upload"
	mtdelete "production-api/http-server/material-type/delete"
	mtget "production-api/http-server/material-type/get"
	mtsave "production-api/http-server/material-type/save"
	mtupdate "production-api/http-server/material-type/update"
	ptdelete "production-api/http-server/product-type/delete"
	ptget "production-api/http-server/product-type/get"
	ptsave "production-api/http-server/product-type/save"
	ptupdate "production-api/http-server/product-type/update"
	pwdelete "production-api/http-server/product-workshop/delete"
	pwget "production-api/http-server/product-workshop/get"
	pwsave "production-api/http-server/product-workshop/save"
	pwupdate "production-api/http-server/product-workshop/update"
	productdelete "production-api/http-server/product/delete"
	productget "production-api/http-server/product/get"
	productsave "production-api/http-server/product/save"
	productupdate "production-api/http-server/product/update"
	wsdelete "production-api/http-server/workshop/delete"
	wsget "production-api/http-server/workshop/get"
	wssave "production-api/http-server/workshop/save"
	wsupdate "production-api/http-server/workshop/update"
	"production-api/internal/config"
	"production-api/internal/metrics"
	"production-api/internal/service/calculator"
	reportsvc "production-api/internal/service/generate-excel"
	import_excel "production-api/internal/service/import-excel"
	"production-api/internal/storage/mysql"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *mysql.Storage,
	calc *calculator.Service,
	importer *import_excel.ImportService,
	report *reportsvc.GenerateExcelService,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(metrics.Middleware)

	router.Get("/", index)
	router.Get("/health", health)
	if cfg.Metrics.Enabled {
		router.Handle("/metrics", metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/material-types", func(r chi.Router) {
			r.Get("/", mtget.ListMaterialTypes(log, storage))
			r.Post("/", mtsave.New(log, storage))
			r.Get("/{id}", mtget.GetMaterialType(log, storage))
			r.Put("/{id}", mtupdate.New(log, storage))
			r.Delete("/{id}", mtdelete.New(log, storage))
		})

		r.Route("/product-types", func(r chi.Router) {
			r.Get("/", ptget.ListProductTypes(log, storage))
			r.Post("/", ptsave.New(log, storage))
			r.Get("/{id}", ptget.GetProductType(log, storage))
			r.Put("/{id}", ptupdate.New(log, storage))
			r.Delete("/{id}", ptdelete.New(log, storage))
		})

		r.Route("/workshops", func(r chi.Router) {
			r.Get("/", wsget.ListWorkshops(log, storage))
			r.Post("/", wssave.New(log, storage))
			r.Get("/{id}", wsget.GetWorkshop(log, storage))
			r.Put("/{id}", wsupdate.New(log, storage))
			r.Delete("/{id}", wsdelete.New(log, storage))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productget.ListProducts(log, storage))
			r.Post("/", productsave.New(log, storage))
			r.Get("/{id}", productget.GetProduct(log, storage))
			r.Put("/{id}", productupdate.New(log, storage))
			r.Delete("/{id}", productdelete.New(log, storage))
		})

		r.Route("/product-workshops", func(r chi.Router) {
			r.Get("/", pwget.ListProductWorkshops(log, storage))
			r.Post("/", pwsave.New(log, storage))
			r.Get("/{id}", pwget.GetProductWorkshop(log, storage))
			r.Put("/{id}", pwupdate.New(log, storage))
			r.Delete("/{id}", pwdelete.New(log, storage))
		})

		r.Route("/calculator", func(r chi.Router) {
			r.Post("/calculate-material", calchandler.CalculateMaterial(log, calc))
			r.Get("/workshops-for-product/{product_id}", calchandler.WorkshopsForProduct(log, calc))
			r.Get("/total-production-time/{product_id}", calchandler.TotalProductionTime(log, calc))
		})

		r.Post("/import/{kind}", upload.ImportExcel(log, importer, cfg.Import.MaxUploadMB))
		r.Get("/report/production-time", generate_excel.GenerateReportExcel(log, report))
	})

	return router
}

type indexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func index(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, indexResponse{
		Message: "Production Management API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"material_types":    "/api/material-types",
			"product_types":     "/api/product-types",
			"workshops":         "/api/workshops",
			"products":          "/api/products",
			"product_workshops": "/api/product-workshops",
			"calculator":        "/api/calculator",
			"import":            "/api/import/{kind}",
			"report":            "/api/report/production-time",
		},
	})
}

func health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
