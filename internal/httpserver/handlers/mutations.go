package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/deps"
)

// mutation decodes a request of type T, turns it into a document mutation
// and applies it. On success the new revision is returned as ETag.
func mutation[T any](d deps.Deps, message string, build func(req *T) domain.Mutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := new(T)
		if err := decodeBody(w, r, d.MaxBodyBytes, req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		rev, err := d.Navigation.Apply(r.Context(), parseIfMatch(r.Header.Get("If-Match")), build(req))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		w.Header().Set("ETag", etag(rev))
		writeJSON(w, http.StatusOK, messageResponse{Message: message})
	}
}

func AddCategory(d deps.Deps) http.HandlerFunc {
	return mutation(d, "Category added successfully", func(req *addCategoryRequest) domain.Mutation {
		return domain.AddCategory{Name: req.Name}
	})
}

func AddSite(d deps.Deps) http.HandlerFunc {
	return mutation(d, "Site added successfully", func(req *addSiteRequest) domain.Mutation {
		return domain.AddSite{
			CategoryIndex: int(*req.CategoryIndex),
			Site:          site(req.SiteName, req.SiteURL, req.SiteIcon),
		}
	})
}

func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return mutation(d, "Category deleted successfully", func(req *deleteCategoryRequest) domain.Mutation {
		return domain.DeleteCategory{CategoryIndex: int(*req.CategoryIndex)}
	})
}

func DeleteSite(d deps.Deps) http.HandlerFunc {
	return mutation(d, "Site deleted successfully", func(req *deleteSiteRequest) domain.Mutation {
		return domain.DeleteSite{
			CategoryIndex: int(*req.CategoryIndex),
			SiteIndex:     int(*req.SiteIndex),
		}
	})
}

func EditSite(d deps.Deps) http.HandlerFunc {
	return mutation(d, "Site updated successfully", func(req *editSiteRequest) domain.Mutation {
		return domain.EditSite{
			CategoryIndex: int(*req.CategoryIndex),
			SiteIndex:     int(*req.SiteIndex),
			Site:          site(req.SiteName, req.SiteURL, req.SiteIcon),
		}
	})
}

func MoveSite(d deps.Deps) http.HandlerFunc {
	return mutation(d, "Site moved successfully", func(req *moveSiteRequest) domain.Mutation {
		return domain.MoveSite{
			CategoryIndex:       int(*req.CategoryIndex),
			SiteIndex:           int(*req.SiteIndex),
			TargetCategoryIndex: int(*req.TargetCategoryIndex),
			Site:                site(req.SiteName, req.SiteURL, req.SiteIcon),
		}
	})
}
