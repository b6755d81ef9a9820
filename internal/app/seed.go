package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"guidepedia/internal/config"
	"guidepedia/internal/domain/entity"
)

// Seed creates the configured categories that do not exist yet, then the
// configured users. It is meant for a fresh in-memory store; a login that
// is already taken fails the call.
func Seed(ctx context.Context, repos Repositories, seed config.Seed) error {
	for _, name := range seed.Categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		existing, err := repos.Categories.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		if existing != nil {
			continue
		}
		if err := repos.Categories.Create(ctx, &entity.Category{Name: name}); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	for _, su := range seed.Users {
		u := &entity.User{
			Login:    su.Login,
			Username: su.Username,
			Avatar:   su.Avatar,
			Bio:      su.Bio,
		}
		if u.Username == "" {
			u.Username = su.Login
		}
		if err := repos.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %q: %w", su.Login, err)
		}
		slog.DebugContext(ctx, "seeded user", slog.String("login", u.Login), slog.Int64("id", u.ID))
	}
	return nil
}
