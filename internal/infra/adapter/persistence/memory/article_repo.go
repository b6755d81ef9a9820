package memory

import (
	"context"
	"fmt"
	"sort"

	"guidepedia/internal/domain/entity"
)

type ArticleRepo struct{ s *Store }

func (r *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	var out *entity.Article
	r.s.read(ctx, func() {
		out = r.s.articles[id].Clone()
	})
	return out, nil
}

func (r *ArticleRepo) GetMany(ctx context.Context, ids []int64) ([]*entity.Article, error) {
	out := make([]*entity.Article, 0, len(ids))
	r.s.read(ctx, func() {
		for _, id := range ids {
			if a, ok := r.s.articles[id]; ok {
				out = append(out, a.Clone())
			}
		}
	})
	return out, nil
}

func (r *ArticleRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Article, error) {
	var out []*entity.Article
	r.s.read(ctx, func() {
		for _, a := range r.s.articles {
			if a.CategoryID == categoryID {
				out = append(out, a.Clone())
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	return r.s.write(ctx, func() error {
		r.s.seq.article++
		article.ID = r.s.seq.article
		article.Version = 1
		if article.CreatedAt.IsZero() {
			article.CreatedAt = r.s.now()
		}
		r.s.articles[article.ID] = article.Clone()
		return nil
	})
}

func (r *ArticleRepo) Save(ctx context.Context, article *entity.Article) error {
	return r.s.write(ctx, func() error {
		stored, ok := r.s.articles[article.ID]
		if !ok {
			return fmt.Errorf("Save: %w", entity.NewNotFound(entity.KindArticle, article.ID))
		}
		if stored.Version != article.Version {
			return fmt.Errorf("Save: article %d: %w", article.ID, entity.ErrConcurrentModification)
		}
		// Author and creation time are fixed once the article exists.
		article.AuthorID = stored.AuthorID
		article.CreatedAt = stored.CreatedAt
		article.Version++
		r.s.articles[article.ID] = article.Clone()
		return nil
	})
}
