package article

import (
	"net/http"

	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/pathutil"
	"guidepedia/internal/handler/http/request"
	"guidepedia/internal/handler/http/respond"
	artUC "guidepedia/internal/usecase/article"
)

// CreateCommentHandler posts a comment as the viewer.
type CreateCommentHandler struct{ Svc *artUC.Service }

func (h CreateCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return
	}
	var req commentRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	c, err := h.Svc.CreateComment(r.Context(), id, viewer, req.Text)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, fromComment(c))
}

// ListCommentsHandler lists an article's comments, oldest first.
type ListCommentsHandler struct{ Svc *artUC.Service }

func (h ListCommentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return
	}

	cs, err := h.Svc.ListComments(r.Context(), id, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	out := make([]CommentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, fromComment(c))
	}
	respond.JSON(w, http.StatusOK, out)
}
