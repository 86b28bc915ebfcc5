package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/mw"
)

func init() { Register(registerNavigation) }

func registerNavigation(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Page(d))
	r.Get("/data", handlers.Data(d))

	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		r.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimit.Burst,
			RefillPerIPPerMin: d.RateLimit.RefillPerMin,
			MaxEntries:        d.RateLimit.MaxEntries,
			IdleTTL:           15 * time.Minute,
			TrustProxy:        d.TrustProxy,
			Now:               d.TimeNow,
		}))

		r.Post("/add-category", handlers.AddCategory(d))
		r.Post("/add-site", handlers.AddSite(d))
		r.Post("/delete-category", handlers.DeleteCategory(d))
		r.Post("/delete-site", handlers.DeleteSite(d))
		r.Post("/edit-site", handlers.EditSite(d))
		r.Post("/move-site", handlers.MoveSite(d))
	})
}
