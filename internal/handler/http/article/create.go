package article

import (
	"net/http"

	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/request"
	"guidepedia/internal/handler/http/respond"
	artUC "guidepedia/internal/usecase/article"
)

// CreateHandler authors an article as the viewer.
type CreateHandler struct{ Svc *artUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	v, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		AuthorID:     viewer,
		CategoryName: req.Category,
		Title:        req.Title,
		Text:         req.Text,
		Description:  req.Description,
		Draft:        req.Draft,
	})
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, FromView(v))
}
