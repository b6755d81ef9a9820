package article

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidepedia/internal/app"
	"guidepedia/internal/config"
	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/respond"
	"guidepedia/internal/infra/adapter/persistence/memory"
)

const (
	alice int64 = 1
	bob   int64 = 2
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	repos := app.MemoryRepositories(memory.NewStore())
	require.NoError(t, app.Seed(context.Background(), repos, config.Seed{
		Categories: []string{"go", "rust"},
		Users:      []config.SeedUser{{Login: "alice"}, {Login: "bob"}},
	}))
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := app.NewServices(repos, func() time.Time { return fixed })

	mux := http.NewServeMux()
	Register(mux, svc.Articles)
	return mux
}

func serve(t *testing.T, mux http.Handler, method, path string, viewer int64, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if viewer > 0 {
		req = req.WithContext(auth.WithViewer(req.Context(), viewer))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateAndGet(t *testing.T) {
	mux := newMux(t)

	rec := serve(t, mux, http.MethodPost, "/articles", alice,
		`{"category":"go","title":"  Generics  ","text":"body","description":"intro"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[DTO](t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Generics", created.Title)
	assert.Equal(t, alice, created.Author.ID)
	assert.Equal(t, "go", created.CategoryName)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), created.CreatedAt)

	rec = serve(t, mux, http.MethodGet, "/articles/1", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[DTO](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.False(t, got.Reacted)
	assert.False(t, got.Saved)
}

func TestCreate_Validation(t *testing.T) {
	mux := newMux(t)

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantField string
	}{
		{"missing title", `{"category":"go"}`, http.StatusBadRequest, "title"},
		{"missing category", `{"title":"x"}`, http.StatusBadRequest, "category"},
		{"unknown field", `{"category":"go","title":"x","tags":[]}`, http.StatusBadRequest, "tags"},
		{"unknown category", `{"category":"haskell","title":"x"}`, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, mux, http.MethodPost, "/articles", alice, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantField, decode[respond.ErrorBody](t, rec).Field)
		})
	}
}

func TestDraftHiddenFromOthers(t *testing.T) {
	mux := newMux(t)
	rec := serve(t, mux, http.MethodPost, "/articles", alice, `{"category":"go","title":"wip","draft":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusOK, serve(t, mux, http.MethodGet, "/articles/1", alice, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, mux, http.MethodGet, "/articles/1", bob, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, mux, http.MethodPut, "/articles/1/reaction", bob, `{"present":true}`).Code)
}

func TestReaction(t *testing.T) {
	mux := newMux(t)
	require.Equal(t, http.StatusCreated, serve(t, mux, http.MethodPost, "/articles", alice, `{"category":"go","title":"t"}`).Code)

	rec := serve(t, mux, http.MethodPut, "/articles/1/reaction", bob, `{"present":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[DTO](t, rec)
	assert.True(t, v.Reacted)
	assert.Equal(t, 1, v.ReactionCount)

	rec = serve(t, mux, http.MethodPut, "/articles/1/reaction", bob, `{"present":true}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, mux, http.MethodPut, "/articles/1/reaction", alice, `{"present":false}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, mux, http.MethodGet, "/articles/1/reactions/count", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ReactionCountDTO{ArticleID: 1, Count: 1}, decode[ReactionCountDTO](t, rec))
}

func TestComments(t *testing.T) {
	mux := newMux(t)
	require.Equal(t, http.StatusCreated, serve(t, mux, http.MethodPost, "/articles", alice, `{"category":"go","title":"t"}`).Code)

	rec := serve(t, mux, http.MethodPost, "/articles/1/comments", bob, `{"text":"first"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[CommentDTO](t, rec)
	assert.Equal(t, bob, c.Author.ID)
	assert.Equal(t, int64(1), c.ArticleID)

	require.Equal(t, http.StatusCreated, serve(t, mux, http.MethodPost, "/articles/1/comments", alice, `{"text":"second"}`).Code)

	rec = serve(t, mux, http.MethodPost, "/articles/1/comments", bob, `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, mux, http.MethodGet, "/articles/1/comments", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]CommentDTO](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "second", list[1].Text)

	assert.Equal(t, http.StatusNotFound, serve(t, mux, http.MethodGet, "/articles/9/comments", alice, "").Code)
}

func TestCategories(t *testing.T) {
	mux := newMux(t)

	rec := serve(t, mux, http.MethodGet, "/categories", 0, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []CategoryDTO{{ID: 1, Name: "go"}, {ID: 2, Name: "rust"}}, decode[[]CategoryDTO](t, rec))

	for _, title := range []string{"a", "b"} {
		require.Equal(t, http.StatusCreated, serve(t, mux, http.MethodPost, "/articles", alice,
			`{"category":"go","title":"`+title+`"}`).Code)
	}

	rec = serve(t, mux, http.MethodGet, "/categories/1/articles", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]DTO](t, rec), 2)

	rec = serve(t, mux, http.MethodGet, "/categories/2/articles", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(t, mux, http.MethodGet, "/categories/7/articles", bob, "").Code)
}

func TestRequiresViewer(t *testing.T) {
	mux := newMux(t)
	rec := serve(t, mux, http.MethodGet, "/articles/1", 0, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
