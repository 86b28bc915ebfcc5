package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/navboard/internal/httpserver/deps"
)

// Data returns the whole document. The revision is sent as ETag so
// clients can pass it back in If-Match with positional mutations.
func Data(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, rev, err := d.Navigation.Document(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		tag := etag(rev)
		w.Header().Set("ETag", tag)
		if r.Header.Get("If-None-Match") == tag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}
