package profile

import (
	"net/http"

	profUC "guidepedia/internal/usecase/profile"
)

// Register mounts the profile, save and subscription routes on mux.
func Register(mux *http.ServeMux, svc *profUC.Service) {
	mux.Handle("GET /me", MeHandler{svc})
	mux.Handle("PATCH /me", UpdateHandler{svc})
	mux.Handle("GET /me/saved", SavedListHandler{svc})
	mux.Handle("GET /me/subscribers", MyUsersHandler{svc.ListSubscribers})
	mux.Handle("GET /me/subscriptions", MyUsersHandler{svc.ListSubscriptions})

	mux.Handle("PUT /articles/{id}/saved", SaveHandler{svc})

	mux.Handle("GET /users/{id}", UserHandler{svc})
	mux.Handle("PUT /users/{id}/subscription", SubscribeHandler{svc})
	mux.Handle("GET /users/{id}/subscribers", UsersOfHandler{svc.ListSubscribersOf})
	mux.Handle("GET /users/{id}/subscriptions", UsersOfHandler{svc.ListSubscriptionsOf})
}
