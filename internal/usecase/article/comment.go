package article

import (
	"context"
	"fmt"
	"log/slog"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/observability/logging"
	"guidepedia/internal/observability/metrics"
)

// CreateComment posts a comment on a visible article.
func (s *Service) CreateComment(ctx context.Context, articleID, viewerID int64, text string) (*CommentView, error) {
	author, err := s.Guard.User(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	a, err := s.visibleArticle(ctx, articleID, viewerID)
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{
		ArticleID: a.ID,
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	metrics.RecordCommentCreated()
	logging.FromContext(ctx).Debug("comment created",
		slog.Int64("comment_id", c.ID),
		slog.Int64("article_id", a.ID))
	return newCommentView(c, author), nil
}

// ListComments returns the article's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, articleID, viewerID int64) ([]*CommentView, error) {
	a, err := s.visibleArticle(ctx, articleID, viewerID)
	if err != nil {
		return nil, err
	}
	comments, err := s.Comments.ListByArticle(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments of article %d: %w", a.ID, err)
	}

	authorIDs := entity.NewIDSet()
	for _, c := range comments {
		authorIDs.Add(c.AuthorID)
	}
	authors, err := s.usersByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, newCommentView(c, authors[c.AuthorID]))
	}
	return views, nil
}
