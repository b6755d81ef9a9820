// Package article provides the authoring, reading and reaction use cases for
// articles, plus comments and category listings.
package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/observability/logging"
	"guidepedia/internal/observability/metrics"
	"guidepedia/internal/repository"
	"guidepedia/internal/usecase/aggregate"
	"guidepedia/internal/usecase/lookup"
	"guidepedia/internal/usecase/relation"
)

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	AuthorID     int64
	CategoryName string
	Title        string
	Text         string
	Description  string
	Draft        bool
}

// Service provides article use cases.
type Service struct {
	Guard    *lookup.Guard
	Comments repository.CommentRepository
	Engine   *relation.Engine
	Reader   *aggregate.Reader
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// visibleArticle resolves an article and hides drafts from everyone but
// their author.
func (s *Service) visibleArticle(ctx context.Context, articleID, viewerID int64) (*entity.Article, error) {
	a, err := s.Guard.Article(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !a.VisibleTo(viewerID) {
		return nil, entity.NewNotFound(entity.KindArticle, articleID)
	}
	return a, nil
}

// Create authors a new article in the named category.
func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	author, err := s.Guard.User(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	cat, err := s.Guard.CategoryByName(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	a := &entity.Article{
		AuthorID:    author.ID,
		CategoryID:  cat.ID,
		Title:       strings.TrimSpace(in.Title),
		Text:        in.Text,
		Description: strings.TrimSpace(in.Description),
		Draft:       in.Draft,
		CreatedAt:   s.now(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.Guard.Articles.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	metrics.RecordArticleCreated(a.Draft)
	logging.FromContext(ctx).Info("article created",
		slog.Int64("article_id", a.ID),
		slog.Int64("author_id", author.ID),
		slog.String("category", cat.Name),
		slog.Bool("draft", a.Draft))

	return newView(a, author, cat.Name, author.ID), nil
}

// Get returns the article as seen by the viewer.
func (s *Service) Get(ctx context.Context, articleID, viewerID int64) (*View, error) {
	if _, err := s.Guard.User(ctx, viewerID); err != nil {
		return nil, err
	}
	a, err := s.visibleArticle(ctx, articleID, viewerID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, a, viewerID)
}

func (s *Service) view(ctx context.Context, a *entity.Article, viewerID int64) (*View, error) {
	author, err := s.Guard.User(ctx, a.AuthorID)
	if err != nil {
		return nil, err
	}
	cat, err := s.Guard.Category(ctx, a.CategoryID)
	if err != nil {
		return nil, err
	}
	return newView(a, author, cat.Name, viewerID), nil
}

// ToggleReaction sets the viewer's reaction on the article to present.
func (s *Service) ToggleReaction(ctx context.Context, articleID int64, present bool, viewerID int64) (*View, error) {
	if _, err := s.visibleArticle(ctx, articleID, viewerID); err != nil {
		return nil, err
	}
	out, err := s.Engine.Toggle(ctx, relation.Request{
		Kind:     entity.RelationReaction,
		ActorID:  viewerID,
		TargetID: articleID,
		Present:  present,
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, out.TargetArticle, viewerID)
}

// ReactionCount returns the number of reactions on a visible article.
func (s *Service) ReactionCount(ctx context.Context, articleID, viewerID int64) (int, error) {
	if _, err := s.Guard.User(ctx, viewerID); err != nil {
		return 0, err
	}
	if _, err := s.visibleArticle(ctx, articleID, viewerID); err != nil {
		return 0, err
	}
	return s.Reader.ReactionCount(ctx, articleID)
}

// ListByCategory lists the category's articles, newest first. Drafts are
// included only for their author.
func (s *Service) ListByCategory(ctx context.Context, categoryID, viewerID int64) ([]*View, error) {
	cat, err := s.Guard.Category(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	articles, err := s.Guard.Articles.ListByCategory(ctx, cat.ID)
	if err != nil {
		return nil, fmt.Errorf("list articles of category %d: %w", cat.ID, err)
	}

	visible := make([]*entity.Article, 0, len(articles))
	authorIDs := entity.NewIDSet()
	for _, a := range articles {
		if a.VisibleTo(viewerID) {
			visible = append(visible, a)
			authorIDs.Add(a.AuthorID)
		}
	}
	authors, err := s.usersByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(visible))
	for _, a := range visible {
		views = append(views, newView(a, authors[a.AuthorID], cat.Name, viewerID))
	}
	return views, nil
}

// Categories lists every registered category.
func (s *Service) Categories(ctx context.Context) ([]*entity.Category, error) {
	return s.Reader.Categories(ctx)
}

func (s *Service) usersByID(ctx context.Context, ids entity.IDSet) (map[int64]*entity.User, error) {
	out := make(map[int64]*entity.User, ids.Len())
	if ids.Len() == 0 {
		return out, nil
	}
	users, err := s.Guard.Users.GetMany(ctx, ids.IDs())
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// Views annotates already-loaded articles for the viewer, dropping the ones
// the viewer may not see. Input order is kept.
func (s *Service) Views(ctx context.Context, articles []*entity.Article, viewerID int64) ([]*View, error) {
	authorIDs := entity.NewIDSet()
	for _, a := range articles {
		authorIDs.Add(a.AuthorID)
	}
	authors, err := s.usersByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	cats, err := s.Reader.Categories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	views := make([]*View, 0, len(articles))
	for _, a := range articles {
		if !a.VisibleTo(viewerID) {
			continue
		}
		views = append(views, newView(a, authors[a.AuthorID], names[a.CategoryID], viewerID))
	}
	return views, nil
}
