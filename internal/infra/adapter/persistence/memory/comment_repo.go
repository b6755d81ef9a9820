package memory

import (
	"context"
	"sort"

	"guidepedia/internal/domain/entity"
)

type CommentRepo struct{ s *Store }

func (r *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	return r.s.write(ctx, func() error {
		r.s.seq.comment++
		comment.ID = r.s.seq.comment
		if comment.CreatedAt.IsZero() {
			comment.CreatedAt = r.s.now()
		}
		cp := *comment
		r.s.comments[cp.ID] = &cp
		return nil
	})
}

func (r *CommentRepo) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Comment, error) {
	var out []*entity.Comment
	r.s.read(ctx, func() {
		for _, c := range r.s.comments {
			if c.ArticleID == articleID {
				cp := *c
				out = append(out, &cp)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
