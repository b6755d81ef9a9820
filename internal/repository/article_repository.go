package repository

import (
	"context"

	"guidepedia/internal/domain/entity"
)

type ArticleRepository interface {
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetMany resolves ids in the given order. Unknown ids are skipped.
	GetMany(ctx context.Context, ids []int64) ([]*entity.Article, error)
	// ListByCategory returns the category's articles, newest first.
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	// Save writes the authored fields and bumps Version with the same
	// optimistic check as UserRepository.Save. Reactors and SavedBy mirror
	// user-owned sets and are persisted through the user side.
	Save(ctx context.Context, article *entity.Article) error
}
