package memory

import (
	"context"
	"fmt"
	"sort"

	"guidepedia/internal/domain/entity"
)

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	r.s.read(ctx, func() {
		if c, ok := r.s.categories[id]; ok {
			cp := *c
			out = &cp
		}
	})
	return out, nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.s.read(ctx, func() {
		for _, c := range r.s.categories {
			if c.Name == name {
				cp := *c
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.s.read(ctx, func() {
		out = make([]*entity.Category, 0, len(r.s.categories))
		for _, c := range r.s.categories {
			cp := *c
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return r.s.write(ctx, func() error {
		for _, c := range r.s.categories {
			if c.Name == category.Name {
				return fmt.Errorf("Create: %w", &entity.ValidationError{Field: "name", Message: "is already taken"})
			}
		}
		r.s.seq.category++
		category.ID = r.s.seq.category
		cp := *category
		r.s.categories[cp.ID] = &cp
		return nil
	})
}
