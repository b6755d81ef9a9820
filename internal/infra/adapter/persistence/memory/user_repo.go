package memory

import (
	"context"
	"fmt"

	"guidepedia/internal/domain/entity"
)

type UserRepo struct{ s *Store }

func (r *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.s.read(ctx, func() {
		out = r.s.users[id].Clone()
	})
	return out, nil
}

func (r *UserRepo) GetMany(ctx context.Context, ids []int64) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(ids))
	r.s.read(ctx, func() {
		for _, id := range ids {
			if u, ok := r.s.users[id]; ok {
				out = append(out, u.Clone())
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.s.write(ctx, func() error {
		for _, u := range r.s.users {
			if u.Login == user.Login {
				return fmt.Errorf("Create: %w", &entity.ValidationError{Field: "login", Message: "is already taken"})
			}
		}
		r.s.seq.user++
		user.ID = r.s.seq.user
		user.Version = 1
		r.s.users[user.ID] = user.Clone()
		return nil
	})
}

func (r *UserRepo) Save(ctx context.Context, user *entity.User) error {
	return r.s.write(ctx, func() error {
		stored, ok := r.s.users[user.ID]
		if !ok {
			return fmt.Errorf("Save: %w", entity.NewNotFound(entity.KindUser, user.ID))
		}
		if stored.Version != user.Version {
			return fmt.Errorf("Save: user %d: %w", user.ID, entity.ErrConcurrentModification)
		}
		user.Version++
		r.s.users[user.ID] = user.Clone()
		return nil
	})
}
