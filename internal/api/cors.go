package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	// AllowOrigins lists permitted origins; empty or "*" allows any.
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	// ExposeHeaders are readable by browser scripts on the response.
	ExposeHeaders []string
	MaxAge        int
}

// DefaultCORSConfig allows any origin. The console frontend is usually
// served from a different port than the API during development.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "Accept", "Origin", "Last-Event-ID", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        86400,
	}
}

type corsHeaders struct {
	origins       []string
	anyOrigin     bool
	allowMethods  string
	allowHeaders  string
	exposeHeaders string
	maxAge        string
}

func newCORSHeaders(config CORSConfig) *corsHeaders {
	return &corsHeaders{
		origins:       config.AllowOrigins,
		anyOrigin:     len(config.AllowOrigins) == 0 || slices.Contains(config.AllowOrigins, "*"),
		allowMethods:  strings.Join(config.AllowMethods, ", "),
		allowHeaders:  strings.Join(config.AllowHeaders, ", "),
		exposeHeaders: strings.Join(config.ExposeHeaders, ", "),
		maxAge:        strconv.Itoa(config.MaxAge),
	}
}

// apply writes the CORS headers for a request from origin through set.
// Disallowed origins get no Access-Control-* headers at all.
func (c *corsHeaders) apply(origin string, set func(name, value string)) {
	switch {
	case c.anyOrigin:
		set("Access-Control-Allow-Origin", "*")
	case origin != "" && slices.Contains(c.origins, origin):
		set("Access-Control-Allow-Origin", origin)
		set("Vary", "Origin")
	default:
		return
	}
	set("Access-Control-Allow-Methods", c.allowMethods)
	set("Access-Control-Allow-Headers", c.allowHeaders)
	if c.exposeHeaders != "" {
		set("Access-Control-Expose-Headers", c.exposeHeaders)
	}
	set("Access-Control-Max-Age", c.maxAge)
}

// NewCORSMiddleware creates CORS middleware with the given configuration
func NewCORSMiddleware(config CORSConfig) func(huma.Context, func(huma.Context)) {
	headers := newCORSHeaders(config)

	return func(ctx huma.Context, next func(huma.Context)) {
		headers.apply(ctx.Header("Origin"), ctx.SetHeader)

		if ctx.Method() == http.MethodOptions {
			ctx.SetStatus(http.StatusNoContent)
			return
		}
		next(ctx)
	}
}

// AddCORSHandler answers preflight requests on the mux. Huma only routes
// registered operations, so OPTIONS never reaches the middleware.
func AddCORSHandler(mux *http.ServeMux, config CORSConfig) {
	headers := newCORSHeaders(config)

	mux.HandleFunc("OPTIONS /", func(w http.ResponseWriter, r *http.Request) {
		headers.apply(r.Header.Get("Origin"), w.Header().Set)
		w.WriteHeader(http.StatusNoContent)
	})
}
