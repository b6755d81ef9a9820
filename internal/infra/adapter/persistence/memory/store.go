// Package memory provides an in-process implementation of the repository
// contracts. All entities live in one arena guarded by a single lock, which
// makes it suitable for tests, local development and single-node demos.
package memory

import (
	"context"
	"sync"
	"time"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/repository"
)

type txKey struct{}

// Store is the arena shared by every repository it hands out.
// Stored values are private clones: readers never observe a caller's
// in-flight mutations, and writers replace entries wholesale.
type Store struct {
	mu sync.RWMutex

	users      map[int64]*entity.User
	articles   map[int64]*entity.Article
	categories map[int64]*entity.Category
	comments   map[int64]*entity.Comment
	seq        sequences

	now func() time.Time
}

type sequences struct {
	user, article, category, comment int64
}

// snapshot holds shallow copies of the arena maps. Entries are never mutated
// in place, so copying the maps is enough to restore a previous state.
type snapshot struct {
	users      map[int64]*entity.User
	articles   map[int64]*entity.Article
	categories map[int64]*entity.Category
	comments   map[int64]*entity.Comment
	seq        sequences
}

// NewStore returns an empty arena.
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]*entity.User),
		articles:   make(map[int64]*entity.Article),
		categories: make(map[int64]*entity.Category),
		comments:   make(map[int64]*entity.Comment),
		now:        time.Now,
	}
}

// Users returns the user repository backed by this arena.
func (s *Store) Users() repository.UserRepository { return &UserRepo{s: s} }

// Articles returns the article repository backed by this arena.
func (s *Store) Articles() repository.ArticleRepository { return &ArticleRepo{s: s} }

// Categories returns the category repository backed by this arena.
func (s *Store) Categories() repository.CategoryRepository { return &CategoryRepo{s: s} }

// Comments returns the comment repository backed by this arena.
func (s *Store) Comments() repository.CommentRepository { return &CommentRepo{s: s} }

// WithinTx runs fn holding the arena's write lock. When fn fails the arena is
// restored to the state it had before fn started. Nested calls join the
// outer unit of work.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:      copyMap(s.users),
		articles:   copyMap(s.articles),
		categories: copyMap(s.categories),
		comments:   copyMap(s.comments),
		seq:        s.seq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.articles = snap.articles
	s.categories = snap.categories
	s.comments = snap.comments
	s.seq = snap.seq
}

func copyMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
