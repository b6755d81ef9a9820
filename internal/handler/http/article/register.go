package article

import (
	"net/http"

	artUC "guidepedia/internal/usecase/article"
)

// Register mounts the article, comment and category routes on mux.
// Authentication is applied around the whole mux, not per route.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /categories", CategoriesHandler{svc})
	mux.Handle("GET /categories/{id}/articles", CategoryArticlesHandler{svc})

	mux.Handle("POST /articles", CreateHandler{svc})
	mux.Handle("GET /articles/{id}", GetHandler{svc})
	mux.Handle("PUT /articles/{id}/reaction", ReactionHandler{svc})
	mux.Handle("GET /articles/{id}/reactions/count", ReactionCountHandler{svc})
	mux.Handle("POST /articles/{id}/comments", CreateCommentHandler{svc})
	mux.Handle("GET /articles/{id}/comments", ListCommentsHandler{svc})
}
