// Package cors answers cross-origin requests from the configured frontend.
package cors

import (
	"net/http"

	rscors "github.com/rs/cors"
)

type Config struct {
	// AllowedOrigins lists the origins echoed back. "*" allows any origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
}

func DefaultConfig(origin string) Config {
	return Config{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	}
}

// Middleware answers preflight requests with 204 and decorates actual
// requests from an allowed origin.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	c := rscors.New(rscors.Options{
		AllowedOrigins:       cfg.AllowedOrigins,
		AllowedMethods:       cfg.AllowedMethods,
		AllowedHeaders:       cfg.AllowedHeaders,
		ExposedHeaders:       cfg.ExposedHeaders,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return c.Handler
}
