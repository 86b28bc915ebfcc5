package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Backend    string `json:"backend,omitempty"`
	Categories *int   `json:"categories,omitempty"`
	Sites      *int   `json:"sites,omitempty"`
	Revision   string `json:"revision,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the store backend and a summary of the stored document.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		components := map[string]componentStatus{
			"store":    checkStore(ctx, d),
			"document": checkDocument(ctx, d),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

// overallStatus is "down" when the store is unreachable, "degraded" when
// the store answers but the document cannot be read, "ok" otherwise.
func overallStatus(components map[string]componentStatus) string {
	if st, ok := components["store"]; ok && !st.OK {
		return "down"
	}
	if doc, ok := components["document"]; ok && !doc.OK {
		return "degraded"
	}
	return "ok"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Error: "store not initialized"}
	}
	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Backend: d.StoreKind, Error: "unreachable"}
	}
	return componentStatus{OK: true, Backend: d.StoreKind}
}

func checkDocument(ctx context.Context, d deps.Deps) componentStatus {
	doc, rev, err := d.Navigation.Document(ctx)
	if err != nil {
		msg := "unavailable"
		if errors.Is(err, domain.ErrStorageCorruption) {
			msg = "corrupt"
		}
		return componentStatus{OK: false, Error: msg}
	}

	categories, sites := len(doc.Categories), doc.SiteCount()
	return componentStatus{
		OK:         true,
		Categories: &categories,
		Sites:      &sites,
		Revision:   rev,
	}
}
