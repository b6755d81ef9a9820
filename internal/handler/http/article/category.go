package article

import (
	"net/http"

	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/pathutil"
	"guidepedia/internal/handler/http/respond"
	artUC "guidepedia/internal/usecase/article"
)

// CategoriesHandler lists every category. It is public.
type CategoriesHandler struct{ Svc *artUC.Service }

func (h CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Svc.Categories(r.Context())
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromCategories(cs))
}

// CategoryArticlesHandler lists the articles of a category, newest first.
type CategoryArticlesHandler struct{ Svc *artUC.Service }

func (h CategoryArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return
	}

	vs, err := h.Svc.ListByCategory(r.Context(), id, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, FromViews(vs))
}
