package security

import (
	"fmt"
	"net/http"
)

// HeadersConfig holds security headers configuration
type HeadersConfig struct {
	CSP string

	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	XFrameOptions                 string
	XContentTypeOptions           string
	XXSSProtection                string
	XDNSPrefetchControl           string
	XDownloadOptions              string
	XPermittedCrossDomainPolicies string
	ReferrerPolicy                string
	CrossOriginOpener             string
	CrossOriginResource           string
	OriginAgentCluster            string
}

// DefaultHeadersConfig mirrors the defaults of the helmet middleware commonly
// placed in front of JSON APIs.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		CSP: "default-src 'self'; " +
			"base-uri 'self'; " +
			"font-src 'self' https: data:; " +
			"form-action 'self'; " +
			"frame-ancestors 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"script-src 'self'; " +
			"script-src-attr 'none'; " +
			"style-src 'self' https: 'unsafe-inline'; " +
			"upgrade-insecure-requests",

		HSTSMaxAge:            15552000, // 180 days
		HSTSIncludeSubdomains: true,

		XFrameOptions:                 "SAMEORIGIN",
		XContentTypeOptions:           "nosniff",
		XXSSProtection:                "0",
		XDNSPrefetchControl:           "off",
		XDownloadOptions:              "noopen",
		XPermittedCrossDomainPolicies: "none",
		ReferrerPolicy:                "no-referrer",
		CrossOriginOpener:             "same-origin",
		CrossOriginResource:           "same-origin",
		OriginAgentCluster:            "?1",
	}
}

// HeadersMiddleware applies security headers to responses
type HeadersMiddleware struct {
	config HeadersConfig
}

// NewHeadersMiddleware creates a new security headers middleware
func NewHeadersMiddleware(config HeadersConfig) *HeadersMiddleware {
	return &HeadersMiddleware{
		config: config,
	}
}

// Middleware returns the HTTP middleware function
func (h *HeadersMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.applyHeaders(w, r)
		next.ServeHTTP(w, r)
	})
}

func (h *HeadersMiddleware) applyHeaders(w http.ResponseWriter, r *http.Request) {
	headers := w.Header()

	setIf := func(name, value string) {
		if value != "" {
			headers.Set(name, value)
		}
	}
	setIf("Content-Security-Policy", h.config.CSP)
	setIf("X-Content-Type-Options", h.config.XContentTypeOptions)
	setIf("X-Frame-Options", h.config.XFrameOptions)
	setIf("X-XSS-Protection", h.config.XXSSProtection)
	setIf("X-DNS-Prefetch-Control", h.config.XDNSPrefetchControl)
	setIf("X-Download-Options", h.config.XDownloadOptions)
	setIf("X-Permitted-Cross-Domain-Policies", h.config.XPermittedCrossDomainPolicies)
	setIf("Referrer-Policy", h.config.ReferrerPolicy)
	setIf("Cross-Origin-Opener-Policy", h.config.CrossOriginOpener)
	setIf("Cross-Origin-Resource-Policy", h.config.CrossOriginResource)
	setIf("Origin-Agent-Cluster", h.config.OriginAgentCluster)
	headers.Del("X-Powered-By")

	// HSTS only means something over TLS
	if r.TLS != nil && h.config.HSTSMaxAge > 0 {
		hstsValue := fmt.Sprintf("max-age=%d", h.config.HSTSMaxAge)
		if h.config.HSTSIncludeSubdomains {
			hstsValue += "; includeSubDomains"
		}
		if h.config.HSTSPreload {
			hstsValue += "; preload"
		}
		headers.Set("Strict-Transport-Security", hstsValue)
	}
}
