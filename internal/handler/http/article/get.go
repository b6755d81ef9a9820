package article

import (
	"net/http"

	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/pathutil"
	"guidepedia/internal/handler/http/respond"
	artUC "guidepedia/internal/usecase/article"
)

// GetHandler returns one article annotated for the viewer.
type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return
	}

	v, err := h.Svc.Get(r.Context(), id, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, FromView(v))
}
