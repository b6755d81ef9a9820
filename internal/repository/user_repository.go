package repository

import (
	"context"

	"guidepedia/internal/domain/entity"
)

type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	// GetMany resolves ids in the given order. Unknown ids are skipped.
	GetMany(ctx context.Context, ids []int64) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// Save writes profile fields and the sets the user owns
	// (SavedArticles, Subscriptions, ArticlesReaction). It bumps Version and
	// fails with entity.ErrConcurrentModification when the stored version moved.
	Save(ctx context.Context, user *entity.User) error
}
