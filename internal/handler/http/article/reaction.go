package article

import (
	"net/http"

	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/pathutil"
	"guidepedia/internal/handler/http/request"
	"guidepedia/internal/handler/http/respond"
	artUC "guidepedia/internal/usecase/article"
)

// ReactionHandler sets whether the viewer reacts to the article. Asking for
// the state the reaction is already in is a conflict.
type ReactionHandler struct{ Svc *artUC.Service }

func (h ReactionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return
	}
	var req ToggleRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	v, err := h.Svc.ToggleReaction(r.Context(), id, *req.Present, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, FromView(v))
}

// ReactionCountHandler returns how many users reacted to the article.
type ReactionCountHandler struct{ Svc *artUC.Service }

func (h ReactionCountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return
	}

	n, err := h.Svc.ReactionCount(r.Context(), id, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ReactionCountDTO{ArticleID: id, Count: n})
}
