package repository

import (
	"context"

	"guidepedia/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// ListByArticle returns comments oldest first.
	ListByArticle(ctx context.Context, articleID int64) ([]*entity.Comment, error)
}
