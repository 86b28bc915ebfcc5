package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navboard/internal/logger"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

type pageData struct {
	Categories []domain.Category
	Revision   string
}

// Page renders the navigation page with its management forms.
func Page(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, rev, err := d.Navigation.Document(r.Context())
		if err != nil {
			status, _ := classify(err)
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(status), status)
			return
		}

		// render into a buffer so a template error never sends a half page
		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, pageData{Categories: doc.Categories, Revision: rev}); err != nil {
			d.Logger.Error("failed to execute page template", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("ETag", etag(rev))
		_, _ = buf.WriteTo(w)
	}
}
