package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/httpx"
	"github.com/oggyb/mentormatch/internal/service/auth"
)

// APIPrefix is where every JSON route is mounted.
const APIPrefix = "/api"

// NewRouter builds the HTTP handler.
//
// Layout:
//   - /health and /metrics at the root, unauthenticated
//   - /api/* with public routes first, then routes behind the bearer middleware
func NewRouter(appCtx *app.AppContext, authService *auth.Service, registrars ...RouteRegistrar) http.Handler {
	cfg := appCtx.Config
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(cfg))

	r.Get("/health", healthHandler(appCtx))
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(rateLimit(cfg))
		r.Use(prometheusMetrics)
		r.Use(chimiddleware.Timeout(cfg.App.RequestTimeout))

		for _, reg := range registrars {
			if pub, ok := reg.(PublicRouteRegistrar); ok {
				pub.RegisterPublicRoutes(r)
			}
		}

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authService))
			for _, reg := range registrars {
				reg.RegisterRoutes(r)
			}
		})
	})

	return r
}

// healthHandler pings the database and Redis.
func healthHandler(appCtx *app.AppContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true

		if sqlDB, err := appCtx.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "unavailable"
			healthy = false
		}
		if err := appCtx.Sessions.Ping(ctx); err != nil {
			checks["redis"] = "unavailable"
			healthy = false
		}

		status := http.StatusOK
		state := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		httpx.Write(w, status, map[string]any{"status": state, "checks": checks})
	}
}

// NewHTTPServer wraps the router in an http.Server bound to the configured address.
func NewHTTPServer(appCtx *app.AppContext, handler http.Handler) *http.Server {
	cfg := appCtx.Config
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.App.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
