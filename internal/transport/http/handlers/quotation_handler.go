package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

type Quoter interface {
	Quote(ctx context.Context, req models.QuoteRequest, source string) (models.QuoteResult, error)
}

type quotationResponse struct {
	Data models.QuoteResult `json:"data"`
}

type QuotationHandler struct {
	log    *zap.Logger
	quoter Quoter
}

func NewQuotationHandler(log *zap.Logger, quoter Quoter) *QuotationHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return &QuotationHandler{
		log:    log,
		quoter: quoter,
	}
}

func (h *QuotationHandler) PostQuotations(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.PostQuotations"

	var body quotationBody
	if err := decodeJSONBody(r, &body); err != nil {
		var be *bodyError
		if errors.As(err, &be) && be.fields != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: be.msg, Fields: be.fields})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.quoter.Quote(r.Context(), body.toDomain(), r.URL.Query().Get("source"))
	if err != nil {
		writeServiceError(w, h.log, op, err)
		return
	}

	writeJSON(w, http.StatusOK, quotationResponse{Data: result})
}
