package profile

import (
	"net/http"

	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/request"
	"guidepedia/internal/handler/http/respond"
	profUC "guidepedia/internal/usecase/profile"
)

// MeHandler returns the viewer's own profile.
type MeHandler struct{ Svc *profUC.Service }

func (h MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	p, err := h.Svc.Get(r.Context(), viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromProfile(p))
}

// UpdateHandler patches the viewer's profile. Omitted fields are unchanged.
type UpdateHandler struct{ Svc *profUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	p, err := h.Svc.Update(r.Context(), viewer, profUC.UpdateInput{
		Username:    req.Username,
		Avatar:      req.Avatar,
		Bio:         req.Bio,
		CardDetails: req.CardDetails,
	})
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromProfile(p))
}

// UserHandler returns another user's profile annotated for the viewer.
type UserHandler struct{ Svc *profUC.Service }

func (h UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, target, ok := viewerAndTarget(w, r)
	if !ok {
		return
	}
	p, err := h.Svc.GetByID(r.Context(), viewer, target)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromProfile(p))
}
