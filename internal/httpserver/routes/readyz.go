package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/mw"
	"github.com/MrSnakeDoc/navboard/internal/metrics"
)

func init() { Register(registerOps) }

// registerOps mounts liveness, readiness and introspection endpoints.
// Only /healthz is public.
func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.MetricsCIDRS, d.TrustProxy, d.Logger))
		r.Get("/readyz", handlers.Readyz(d))
		r.Get("/infra", handlers.Infra(d))
		r.Method("GET", "/metrics", metrics.Handler())
	})
}
