package repository

import (
	"context"

	"guidepedia/internal/domain/entity"
)

type CategoryRepository interface {
	Get(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
}
