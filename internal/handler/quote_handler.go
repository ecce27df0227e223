package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"quote-desk/internal/model"
	"quote-desk/internal/reference"
	"quote-desk/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 50

	quotesPath     = "/api/quotes/"
	referencePath  = "/api/quotes/reference/"
	statusSuffix   = "/status"
	submitFailed   = "failed to submit quote"
	retrieveFailed = "failed to retrieve quote"
)

// QuoteHandler handles quote-related HTTP requests.
type QuoteHandler struct {
	service service.QuoteService
	logger  zerolog.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service service.QuoteService, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		logger:  logger.With().Str("handler", "quote").Logger(),
	}
}

// Submit handles POST /api/quotes requests.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	quote, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case model.IsValidation(err):
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		case model.IsConflict(err):
			writeError(w, http.StatusConflict, err.Error(), h.logger)
		default:
			writeError(w, http.StatusInternalServerError, submitFailed, h.logger)
		}
		return
	}

	writeQuote(w, http.StatusCreated, quote)
}

// GetByReference handles GET /api/quotes/reference/{ref} requests.
func (h *QuoteHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	ref := strings.TrimPrefix(r.URL.Path, referencePath)
	if !reference.Pattern.MatchString(ref) {
		writeError(w, http.StatusBadRequest, "invalid reference number format", h.logger)
		return
	}

	quote, err := h.service.GetByReference(r.Context(), ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, retrieveFailed, h.logger)
		return
	}

	if quote == nil {
		writeError(w, http.StatusNotFound, "quote not found", h.logger)
		return
	}

	writeQuote(w, http.StatusOK, quote)
}

// List handles GET /api/quotes requests with pagination.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset parameter", h.logger)
			return
		}
	}

	quotes, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		if model.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve quotes", h.logger)
		return
	}

	if quotes == nil {
		quotes = []model.Quote{}
	}

	writeJSON(w, http.StatusOK, model.QuoteListResponse{
		Success: true,
		Quotes:  quotes,
		Limit:   limit,
		Offset:  offset,
	})
}

// UpdateStatus handles PATCH /api/quotes/{id}/status requests.
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, quotesPath), statusSuffix)
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote ID format", h.logger)
		return
	}

	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	quote, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if model.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update quote", h.logger)
		return
	}

	if quote == nil {
		writeError(w, http.StatusNotFound, "quote not found", h.logger)
		return
	}

	writeQuote(w, http.StatusOK, quote)
}

// Delete handles DELETE /api/quotes/{id} requests.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, quotesPath)
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote ID format", h.logger)
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete quote", h.logger)
		return
	}

	if !deleted {
		writeError(w, http.StatusNotFound, "quote not found", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
