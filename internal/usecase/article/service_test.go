package article_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/infra/adapter/persistence/memory"
	"guidepedia/internal/observability/metrics"
	"guidepedia/internal/usecase/aggregate"
	"guidepedia/internal/usecase/article"
	"guidepedia/internal/usecase/lookup"
	"guidepedia/internal/usecase/relation"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	svc    *article.Service
	store  *memory.Store
	author *entity.User
	reader *entity.User
	it     *entity.Category
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	author := &entity.User{Login: "author", Username: "Ada", Avatar: "ada.png"}
	reader := &entity.User{Login: "reader", Username: "Rex"}
	require.NoError(t, store.Users().Create(ctx, author))
	require.NoError(t, store.Users().Create(ctx, reader))
	it := &entity.Category{Name: "IT"}
	require.NoError(t, store.Categories().Create(ctx, it))

	guard := lookup.New(store.Users(), store.Articles(), store.Categories())
	svc := &article.Service{
		Guard:    guard,
		Comments: store.Comments(),
		Engine:   relation.NewEngine(store, guard),
		Reader:   aggregate.NewReader(guard),
		Now:      func() time.Time { return fixedNow },
	}
	return &env{svc: svc, store: store, author: author, reader: reader, it: it}
}

func (e *env) create(t *testing.T, title string, draft bool) *article.View {
	t.Helper()
	v, err := e.svc.Create(context.Background(), article.CreateInput{
		AuthorID:     e.author.ID,
		CategoryName: "IT",
		Title:        title,
		Text:         "body",
		Draft:        draft,
	})
	require.NoError(t, err)
	return v
}

func TestCreate(t *testing.T) {
	e := newEnv(t)
	counter := metrics.ArticlesCreatedTotal.WithLabelValues("false")
	before := testutil.ToFloat64(counter)

	v, err := e.svc.Create(context.Background(), article.CreateInput{
		AuthorID:     e.author.ID,
		CategoryName: "IT",
		Title:        "  Channels in practice ",
		Text:         "text",
		Description:  "desc",
	})
	require.NoError(t, err)

	assert.Positive(t, v.ID)
	assert.Equal(t, "Channels in practice", v.Title)
	assert.Equal(t, "IT", v.CategoryName)
	assert.Equal(t, e.author.ID, v.Author.ID)
	assert.Equal(t, "Ada", v.Author.Username)
	assert.Equal(t, fixedNow, v.CreatedAt)
	assert.Zero(t, v.ReactionCount)
	assert.False(t, v.Reacted)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	stored, err := e.store.Articles().Get(context.Background(), v.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Zero(t, stored.Reactors.Len())
	assert.Zero(t, stored.SavedBy.Len())
}

func TestCreate_UnknownCategory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.Create(ctx, article.CreateInput{
		AuthorID: e.author.ID, CategoryName: "nonexistent", Title: "t",
	})
	require.Error(t, err)

	var nf *entity.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, entity.KindCategory, nf.Entity)
	assert.Equal(t, "nonexistent", nf.Key)

	list, err := e.store.Articles().ListByCategory(ctx, e.it.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_Invalid(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name  string
		in    article.CreateInput
		field string
	}{
		{"blank title", article.CreateInput{AuthorID: e.author.ID, CategoryName: "IT", Title: "  "}, "title"},
		{"long title", article.CreateInput{AuthorID: e.author.ID, CategoryName: "IT", Title: strings.Repeat("x", 256)}, "title"},
		{"long description", article.CreateInput{AuthorID: e.author.ID, CategoryName: "IT", Title: "t", Description: strings.Repeat("d", 1001)}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Create(context.Background(), tt.in)
			var verr *entity.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreate_UnknownAuthor(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Create(context.Background(), article.CreateInput{AuthorID: 99, CategoryName: "IT", Title: "t"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGet_DraftVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	draft := e.create(t, "wip", true)

	v, err := e.svc.Get(ctx, draft.ID, e.author.ID)
	require.NoError(t, err)
	assert.True(t, v.Draft)

	_, err = e.svc.Get(ctx, draft.ID, e.reader.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = e.svc.ToggleReaction(ctx, draft.ID, true, e.reader.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestToggleReaction(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.create(t, "public", false)

	v, err := e.svc.ToggleReaction(ctx, a.ID, true, e.reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, v.ReactionCount)
	assert.True(t, v.Reacted)
	assert.Equal(t, "IT", v.CategoryName)

	n, err := e.svc.ReactionCount(ctx, a.ID, e.author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = e.svc.ToggleReaction(ctx, a.ID, true, e.reader.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)

	v, err = e.svc.ToggleReaction(ctx, a.ID, false, e.reader.ID)
	require.NoError(t, err)
	assert.Zero(t, v.ReactionCount)
	assert.False(t, v.Reacted)

	_, err = e.svc.ReactionCount(ctx, 404, e.reader.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestListByCategory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	older := e.create(t, "older", false)
	e.svc.Now = func() time.Time { return fixedNow.Add(time.Hour) }
	newer := e.create(t, "newer", false)
	draft := e.create(t, "draft", true)

	forReader, err := e.svc.ListByCategory(ctx, e.it.ID, e.reader.ID)
	require.NoError(t, err)
	require.Len(t, forReader, 2)
	assert.Equal(t, newer.ID, forReader[0].ID)
	assert.Equal(t, older.ID, forReader[1].ID)
	assert.Equal(t, "Ada", forReader[0].Author.Username)

	forAuthor, err := e.svc.ListByCategory(ctx, e.it.ID, e.author.ID)
	require.NoError(t, err)
	ids := make([]int64, 0, len(forAuthor))
	for _, v := range forAuthor {
		ids = append(ids, v.ID)
	}
	assert.Contains(t, ids, draft.ID)

	_, err = e.svc.ListByCategory(ctx, 77, e.reader.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCategories(t *testing.T) {
	e := newEnv(t)
	cats, err := e.svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "IT", cats[0].Name)
}

func TestViews(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pub := e.create(t, "public", false)
	draft := e.create(t, "draft", true)

	loaded, err := e.store.Articles().GetMany(ctx, []int64{draft.ID, pub.ID})
	require.NoError(t, err)

	views, err := e.svc.Views(ctx, loaded, e.reader.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, pub.ID, views[0].ID)
	assert.Equal(t, "IT", views[0].CategoryName)
	assert.Equal(t, "Ada", views[0].Author.Username)

	views, err = e.svc.Views(ctx, loaded, e.author.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, draft.ID, views[0].ID)
}
