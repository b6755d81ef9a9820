package profile

import (
	"context"
	"net/http"

	"guidepedia/internal/handler/http/article"
	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/pathutil"
	"guidepedia/internal/handler/http/request"
	"guidepedia/internal/handler/http/respond"
	profUC "guidepedia/internal/usecase/profile"
)

func viewerAndTarget(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return 0, 0, false
	}
	target, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.InvalidField(w, "id", err)
		return 0, 0, false
	}
	return viewer, target, true
}

// SubscribeHandler sets whether the viewer subscribes to the user in the
// path and returns that user afterwards.
type SubscribeHandler struct{ Svc *profUC.Service }

func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, target, ok := viewerAndTarget(w, r)
	if !ok {
		return
	}
	var req article.ToggleRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	u, err := h.Svc.ToggleSubscription(r.Context(), target, *req.Present, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromUser(u))
}

type listFunc func(ctx context.Context, viewerID int64) ([]*profUC.UserView, error)

// MyUsersHandler lists users related to the viewer: subscribers or
// subscriptions depending on List.
type MyUsersHandler struct{ List listFunc }

func (h MyUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.RequireViewer(w, r)
	if !ok {
		return
	}
	us, err := h.List(r.Context(), viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromUsers(us))
}

type listOfFunc func(ctx context.Context, viewerID, targetID int64) ([]*profUC.UserView, error)

// UsersOfHandler lists users related to the user in the path.
type UsersOfHandler struct{ List listOfFunc }

func (h UsersOfHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, target, ok := viewerAndTarget(w, r)
	if !ok {
		return
	}
	us, err := h.List(r.Context(), viewer, target)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fromUsers(us))
}
