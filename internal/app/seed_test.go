package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidepedia/internal/config"
	"guidepedia/internal/domain/entity"
	"guidepedia/internal/infra/adapter/persistence/memory"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repos := MemoryRepositories(memory.NewStore())
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{Name: "go"}))

	err := Seed(ctx, repos, config.Seed{
		Categories: []string{"go", " rust ", ""},
		Users:      []config.SeedUser{{Login: "alice"}, {Login: "bob", Username: "Bob"}},
	})
	require.NoError(t, err)

	cats, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"go", "rust"}, names)

	users, err := repos.Users.GetMany(ctx, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "Bob", users[1].Username)
}

func TestSeed_DuplicateLogin(t *testing.T) {
	repos := MemoryRepositories(memory.NewStore())
	err := Seed(context.Background(), repos, config.Seed{
		Users: []config.SeedUser{{Login: "alice"}, {Login: "alice"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}
