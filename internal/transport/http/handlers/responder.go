package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
)

type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
	Text   string `json:"text,omitempty"`
	Fields any    `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Detail: message})
}

// writeServiceError maps domain errors onto status codes. Client errors carry
// their message; server side failures are logged and answered generically.
// A failed listing wraps the last probe error and must be reported as itself.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	var upstream *derr.UpstreamError

	switch {
	case errors.Is(err, derr.ErrListingUnavailable):
		log.Warn("vehicle listing unavailable", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, derr.ErrListingUnavailable.Error())
	case errors.Is(err, derr.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, derr.ErrInvalidDateRange.Error())
	case errors.Is(err, derr.ErrInvalidRequest), errors.Is(err, derr.ErrUnknownSource):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, derr.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, derr.ErrVehicleNotFound.Error())
	case errors.As(err, &upstream):
		log.Warn("upstream rejected request", zap.String("op", op), zap.String("code", upstream.Code), zap.String("text", upstream.Text))
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Detail: derr.ErrUpstreamRejected.Error(),
			Code:   upstream.Code,
			Text:   upstream.Text,
		})
	case errors.Is(err, derr.ErrUpstreamAuth), errors.Is(err, derr.ErrUpstreamRejected):
		log.Warn("upstream call failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadGateway, rootMessage(err))
	case errors.Is(err, derr.ErrUpstreamUnavailable):
		log.Warn("upstream unavailable", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, rootMessage(err))
	case errors.Is(err, derr.ErrUpstreamNotConfigured):
		writeError(w, http.StatusNotImplemented, derr.ErrUpstreamNotConfigured.Error())
	default:
		log.Error("request failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func rootMessage(err error) string {
	for _, sentinel := range []error{
		derr.ErrListingUnavailable,
		derr.ErrUpstreamAuth,
		derr.ErrUpstreamRejected,
		derr.ErrUpstreamUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
