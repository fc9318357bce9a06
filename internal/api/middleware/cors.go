package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/pratik-mahalle/freelancehub/internal/config"
)

// devOrigins are the local dashboard dev servers, allowed outside production
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the dashboard origins from cfg. The dashboard talks to the hosted
// backend through its client SDK, so the SDK's apikey and x-client-info headers
// are accepted alongside the usual ones.
func CORS(cfg config.ServerConfig) func(http.Handler) http.Handler {
	origins := append([]string(nil), cfg.CORSOrigins...)
	if len(origins) == 0 && cfg.FrontendURL != "" {
		origins = append(origins, cfg.FrontendURL)
	}
	if !cfg.IsProduction() {
		origins = append(origins, devOrigins...)
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			RequestIDHeader,
			"apikey",
			"x-client-info",
		},
		ExposedHeaders:   []string{RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
