package handler

import (
	"encoding/json"
	"net/http"

	"quote-desk/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a failure envelope with a stable message. Internal
// details never reach the client; they are logged here instead.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Success: false, Message: message})
}

// writeQuote writes a success envelope wrapping a single quote.
func writeQuote(w http.ResponseWriter, status int, quote *model.Quote) {
	writeJSON(w, status, model.QuoteResponse{Success: true, Quote: quote})
}
