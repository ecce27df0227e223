package router

import (
	"net/http"
	"strings"

	"quote-desk/internal/handler"
	"quote-desk/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Quote submission, reference lookup and the catalogue are public; listing,
// status updates and deletion require the admin API key.
func New(
	quoteHandler *handler.QuoteHandler,
	productHandler *handler.ProductHandler,
	adminAPIKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	adminOnly := middleware.AdminAuth(adminAPIKey, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Admin-only quote handlers
	listQuotes := adminOnly(http.HandlerFunc(quoteHandler.List))
	updateStatus := adminOnly(http.HandlerFunc(quoteHandler.UpdateStatus))
	deleteQuote := adminOnly(http.HandlerFunc(quoteHandler.Delete))

	// Quote handler function
	quoteRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Collection endpoint: public submission, admin listing
		if path == "/api/quotes" || path == "/api/quotes/" {
			if r.Method == http.MethodPost {
				quoteHandler.Submit(w, r)
				return
			}
			listQuotes.ServeHTTP(w, r)
			return
		}

		// Public customer lookup by reference number
		if strings.HasPrefix(path, "/api/quotes/reference/") {
			quoteHandler.GetByReference(w, r)
			return
		}

		// Admin status transition
		if strings.HasSuffix(path, "/status") {
			updateStatus.ServeHTTP(w, r)
			return
		}

		// Admin deletion by id
		if strings.HasPrefix(path, "/api/quotes/") {
			deleteQuote.ServeHTTP(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	mux.HandleFunc("/api/quotes", quoteRouteHandler)
	mux.HandleFunc("/api/quotes/", quoteRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
