package profile

import (
	"net/http"

	"guidepedia/internal/handler/http/article"
	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/pathutil"
	"guidepedia/internal/handler/http/request"
	"guidepedia/internal/handler/http/respond"
	profUC "guidepedia/internal/usecase/profile"
)

// SaveHandler sets whether the viewer has saved the article and returns
// the viewer afterwards.
type SaveHandler struct{ Svc *profUC.Service }

func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return
	}
	var req article.ToggleRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	u, err := h.Svc.ToggleSavedArticle(r.Context(), id, *req.Present, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromUser(u))
}

// SavedListHandler lists the viewer's saved articles.
type SavedListHandler struct{ Svc *profUC.Service }

func (h SavedListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	vs, err := h.Svc.ListSavedArticles(r.Context(), viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, article.FromViews(vs))
}
