// Package aggregate answers read-only questions about relationship sets:
// counts, listings and profile annotations. Nothing here mutates state.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/usecase/lookup"
)

// ProfileView is a user as seen by a viewer.
type ProfileView struct {
	User              *entity.User
	Subscribed        bool
	SubscriberCount   int
	SubscriptionCount int
}

// Reader resolves entities through the Guard and derives views from their sets.
type Reader struct {
	guard *lookup.Guard
}

// NewReader builds a Reader.
func NewReader(guard *lookup.Guard) *Reader {
	return &Reader{guard: guard}
}

// ReactionCount returns the size of the article's reactor set.
func (r *Reader) ReactionCount(ctx context.Context, articleID int64) (int, error) {
	a, err := r.guard.Article(ctx, articleID)
	if err != nil {
		return 0, err
	}
	return a.ReactionCount(), nil
}

// Subscribers lists the users subscribed to userID.
func (r *Reader) Subscribers(ctx context.Context, userID int64) ([]*entity.User, error) {
	u, err := r.guard.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.users(ctx, u.Subscribers)
}

// Subscriptions lists the users userID is subscribed to.
func (r *Reader) Subscriptions(ctx context.Context, userID int64) ([]*entity.User, error) {
	u, err := r.guard.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.users(ctx, u.Subscriptions)
}

// SavedArticles lists the articles userID saved.
func (r *Reader) SavedArticles(ctx context.Context, userID int64) ([]*entity.Article, error) {
	u, err := r.guard.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.SavedArticles.Len() == 0 {
		return []*entity.Article{}, nil
	}
	articles, err := r.guard.Articles.GetMany(ctx, u.SavedArticles.IDs())
	if err != nil {
		return nil, fmt.Errorf("saved articles of user %d: %w", userID, err)
	}
	return articles, nil
}

func (r *Reader) users(ctx context.Context, set entity.IDSet) ([]*entity.User, error) {
	if set.Len() == 0 {
		return []*entity.User{}, nil
	}
	users, err := r.guard.Users.GetMany(ctx, set.IDs())
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	return users, nil
}

// Profile resolves the target and the viewer concurrently and reports whether
// the viewer is among the target's subscribers.
func (r *Reader) Profile(ctx context.Context, targetID, viewerID int64) (*ProfileView, error) {
	var target *entity.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := r.guard.User(gctx, targetID)
		target = u
		return err
	})
	if viewerID != targetID {
		g.Go(func() error {
			_, err := r.guard.User(gctx, viewerID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ProfileView{
		User:              target,
		Subscribed:        target.Subscribers.Contains(viewerID),
		SubscriberCount:   target.Subscribers.Len(),
		SubscriptionCount: target.Subscriptions.Len(),
	}, nil
}

// Categories lists every category.
func (r *Reader) Categories(ctx context.Context) ([]*entity.Category, error) {
	cats, err := r.guard.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// CategoryExists reports whether a category with the given name is registered.
func (r *Reader) CategoryExists(ctx context.Context, name string) (bool, error) {
	_, err := r.guard.CategoryByName(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, entity.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
