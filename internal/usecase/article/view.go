package article

import (
	"time"

	"guidepedia/internal/domain/entity"
)

// AuthorSummary is the part of a user shown next to articles and comments.
type AuthorSummary struct {
	ID       int64
	Username string
	Avatar   string
}

func summarize(u *entity.User) AuthorSummary {
	if u == nil {
		return AuthorSummary{}
	}
	return AuthorSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// View is an article annotated for a particular viewer.
type View struct {
	ID            int64
	Title         string
	Text          string
	Description   string
	Draft         bool
	CreatedAt     time.Time
	Author        AuthorSummary
	CategoryID    int64
	CategoryName  string
	ReactionCount int
	Reacted       bool
	Saved         bool
}

func newView(a *entity.Article, author *entity.User, categoryName string, viewerID int64) *View {
	return &View{
		ID:            a.ID,
		Title:         a.Title,
		Text:          a.Text,
		Description:   a.Description,
		Draft:         a.Draft,
		CreatedAt:     a.CreatedAt,
		Author:        summarize(author),
		CategoryID:    a.CategoryID,
		CategoryName:  categoryName,
		ReactionCount: a.ReactionCount(),
		Reacted:       a.Reactors.Contains(viewerID),
		Saved:         a.SavedBy.Contains(viewerID),
	}
}

// CommentView is a comment with its author summary.
type CommentView struct {
	ID        int64
	ArticleID int64
	Text      string
	CreatedAt time.Time
	Author    AuthorSummary
}

func newCommentView(c *entity.Comment, author *entity.User) *CommentView {
	return &CommentView{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		Author:    summarize(author),
	}
}
