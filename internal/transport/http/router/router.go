package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Golden-Bit/myrent-SDK/internal/transport/http/handlers"
	"github.com/Golden-Bit/myrent-SDK/internal/transport/http/middleware"
)

const apiPrefix = "/api/v1/touroperator"

type Deps struct {
	Log      *zap.Logger
	Version  string
	APIKey   string
	Quoter   handlers.Quoter
	Catalog  handlers.Catalog
	Gatherer prometheus.Gatherer
}

func New(deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	quotations := handlers.NewQuotationHandler(log, deps.Quoter)
	catalog := handlers.NewCatalogHandler(log, deps.Catalog)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(log),
		middleware.RequestID(),
		middleware.Logging(log),
		middleware.CORS(),
	)

	r.Get("/health", handlers.Health(deps.Version))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(middleware.APIKey(deps.APIKey, log))

		r.Get("/locations", catalog.GetLocations)
		r.Post("/quotations", quotations.PostQuotations)
		r.Get("/vehicles", catalog.GetVehicles)
		r.Get("/vehicles/{vehicleID}", catalog.GetVehicle)
		r.Get("/damages/{plateOrVin}", catalog.GetDamages)
	})

	return r
}
