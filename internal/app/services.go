// Package app assembles the use-case services on top of a store. It is the
// composition root shared by cmd/api and the HTTP tests.
package app

import (
	"database/sql"
	"time"

	"guidepedia/internal/infra/adapter/persistence/memory"
	"guidepedia/internal/infra/adapter/persistence/postgres"
	"guidepedia/internal/repository"
	"guidepedia/internal/usecase/aggregate"
	"guidepedia/internal/usecase/article"
	"guidepedia/internal/usecase/lookup"
	"guidepedia/internal/usecase/profile"
	"guidepedia/internal/usecase/relation"
)

// Repositories is one entity store: the four repositories and the
// transaction boundary they share.
type Repositories struct {
	Tx         repository.Transactor
	Users      repository.UserRepository
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Comments   repository.CommentRepository
}

// MemoryRepositories exposes an in-memory store.
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Tx:         s,
		Users:      s.Users(),
		Articles:   s.Articles(),
		Categories: s.Categories(),
		Comments:   s.Comments(),
	}
}

// PostgresRepositories exposes a PostgreSQL store. The transactor is
// returned as well so callers can report its circuit breaker.
func PostgresRepositories(db *sql.DB) (Repositories, *postgres.Transactor) {
	tx := postgres.NewTransactor(db)
	return Repositories{
		Tx:         tx,
		Users:      postgres.NewUserRepo(db),
		Articles:   postgres.NewArticleRepo(db),
		Categories: postgres.NewCategoryRepo(db),
		Comments:   postgres.NewCommentRepo(db),
	}, tx
}

// Services holds the wired use cases.
type Services struct {
	Guard    *lookup.Guard
	Engine   *relation.Engine
	Reader   *aggregate.Reader
	Articles *article.Service
	Profiles *profile.Service
}

// NewServices wires every use case on top of repos. now may be nil.
func NewServices(repos Repositories, now func() time.Time) *Services {
	guard := lookup.New(repos.Users, repos.Articles, repos.Categories)
	engine := relation.NewEngine(repos.Tx, guard)
	reader := aggregate.NewReader(guard)
	articles := &article.Service{
		Guard:    guard,
		Comments: repos.Comments,
		Engine:   engine,
		Reader:   reader,
		Now:      now,
	}
	return &Services{
		Guard:    guard,
		Engine:   engine,
		Reader:   reader,
		Articles: articles,
		Profiles: &profile.Service{
			Tx:       repos.Tx,
			Guard:    guard,
			Engine:   engine,
			Reader:   reader,
			Articles: articles,
		},
	}
}
