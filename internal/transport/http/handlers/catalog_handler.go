package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Golden-Bit/myrent-SDK/internal/application/service"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

type Catalog interface {
	Locations(ctx context.Context, source string) ([]models.Location, error)
	Vehicles(ctx context.Context, q service.VehiclesQuery) (models.VehiclesPage, error)
	Vehicle(ctx context.Context, id string) (models.VehicleCatalogEntry, error)
	Damages(ctx context.Context, plateOrVIN string) models.Damages
}

type CatalogHandler struct {
	log     *zap.Logger
	catalog Catalog
}

func NewCatalogHandler(log *zap.Logger, catalog Catalog) *CatalogHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return &CatalogHandler{
		log:     log,
		catalog: catalog,
	}
}

func (h *CatalogHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.GetLocations"

	locations, err := h.catalog.Locations(r.Context(), r.URL.Query().Get("source"))
	if err != nil {
		writeServiceError(w, h.log, op, err)
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}

	writeJSON(w, http.StatusOK, locations)
}

func (h *CatalogHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.GetVehicles"
	query := r.URL.Query()

	q := service.VehiclesQuery{
		Location: strings.TrimSpace(query.Get("location")),
		Source:   query.Get("source"),
		Channel:  strings.TrimSpace(query.Get("channel")),
	}

	if skip, present, errMsg := parseIntQuery(r, "skip"); present {
		if errMsg != "" {
			writeError(w, http.StatusBadRequest, "skip must be an integer")
			return
		}
		q.Skip = skip
	}
	if size, present, errMsg := parseIntQuery(r, "page_size"); present {
		if errMsg != "" {
			writeError(w, http.StatusBadRequest, "page_size must be an integer")
			return
		}
		q.PageSize = &size
	}
	if age, present, errMsg := parseIntQuery(r, "age"); present {
		if errMsg != "" || age < 0 {
			writeError(w, http.StatusBadRequest, "age must be a non-negative integer")
			return
		}
		q.Age = age
	}

	page, err := h.catalog.Vehicles(r.Context(), q)
	if err != nil {
		writeServiceError(w, h.log, op, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.GetVehicle"

	entry, err := h.catalog.Vehicle(r.Context(), chi.URLParam(r, "vehicleID"))
	if err != nil {
		writeServiceError(w, h.log, op, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *CatalogHandler) GetDamages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Damages(r.Context(), chi.URLParam(r, "plateOrVin")))
}

// parseIntQuery reports whether key was sent and, if so, whether it parsed.
func parseIntQuery(r *http.Request, key string) (value int, present bool, errMsg string) {
	values, ok := r.URL.Query()[key]
	if !ok {
		return 0, false, ""
	}

	raw := ""
	if len(values) > 0 {
		raw = strings.TrimSpace(values[0])
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, "invalid"
	}

	return parsed, true, ""
}
