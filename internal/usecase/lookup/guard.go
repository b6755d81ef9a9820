// Package lookup resolves identifiers to entities. A missing entity is always
// reported as a typed entity.NotFoundError; callers never see a nil entity.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/repository"
)

// Guard resolves users, articles and categories.
type Guard struct {
	Users      repository.UserRepository
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
}

// New builds a Guard over the given repositories.
func New(users repository.UserRepository, articles repository.ArticleRepository, categories repository.CategoryRepository) *Guard {
	return &Guard{Users: users, Articles: articles, Categories: categories}
}

func resolve[T any](ctx context.Context, kind entity.Kind, id int64, get func(context.Context, int64) (*T, error)) (*T, error) {
	if id <= 0 {
		return nil, entity.NewNotFound(kind, id)
	}
	v, err := get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve %s %d: %w", kind, id, err)
	}
	if v == nil {
		return nil, entity.NewNotFound(kind, id)
	}
	return v, nil
}

// User resolves a user by id.
func (g *Guard) User(ctx context.Context, id int64) (*entity.User, error) {
	return resolve(ctx, entity.KindUser, id, g.Users.Get)
}

// Article resolves an article by id.
func (g *Guard) Article(ctx context.Context, id int64) (*entity.Article, error) {
	return resolve(ctx, entity.KindArticle, id, g.Articles.Get)
}

// Category resolves a category by id.
func (g *Guard) Category(ctx context.Context, id int64) (*entity.Category, error) {
	return resolve(ctx, entity.KindCategory, id, g.Categories.Get)
}

// CategoryByName resolves a category by its unique name. Surrounding
// whitespace is ignored.
func (g *Guard) CategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entity.NewNotFoundByName(entity.KindCategory, name)
	}
	c, err := g.Categories.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve category %q: %w", name, err)
	}
	if c == nil {
		return nil, entity.NewNotFoundByName(entity.KindCategory, name)
	}
	return c, nil
}
