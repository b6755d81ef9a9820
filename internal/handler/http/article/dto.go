// Package article provides HTTP handlers for articles, their reactions and
// comments, and the category listings.
package article

import (
	"time"

	"guidepedia/internal/domain/entity"
	artUC "guidepedia/internal/usecase/article"
)

// AuthorDTO is the author summary shown next to articles and comments.
type AuthorDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	Description   string    `json:"description"`
	Draft         bool      `json:"draft"`
	CreatedAt     time.Time `json:"created_at"`
	Author        AuthorDTO `json:"author"`
	CategoryID    int64     `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	ReactionCount int       `json:"reaction_count"`
	Reacted       bool      `json:"reacted"`
	Saved         bool      `json:"saved"`
}

// CommentDTO is a comment as returned to clients.
type CommentDTO struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    AuthorDTO `json:"author"`
}

// CategoryDTO is a category as returned to clients.
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReactionCountDTO answers the reaction count endpoint.
type ReactionCountDTO struct {
	ArticleID int64 `json:"article_id"`
	Count     int   `json:"count"`
}

type createRequest struct {
	Category    string `json:"category" validate:"required,max=255"`
	Title       string `json:"title" validate:"required,max=255"`
	Text        string `json:"text"`
	Description string `json:"description" validate:"max=1000"`
	Draft       bool   `json:"draft"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// ToggleRequest is the body of every relationship toggle: the state the
// caller wants the relationship to be in.
type ToggleRequest struct {
	Present *bool `json:"present" validate:"required"`
}

func author(a artUC.AuthorSummary) AuthorDTO {
	return AuthorDTO{ID: a.ID, Username: a.Username, Avatar: a.Avatar}
}

// FromView converts an article view to its DTO.
func FromView(v *artUC.View) DTO {
	return DTO{
		ID:            v.ID,
		Title:         v.Title,
		Text:          v.Text,
		Description:   v.Description,
		Draft:         v.Draft,
		CreatedAt:     v.CreatedAt,
		Author:        author(v.Author),
		CategoryID:    v.CategoryID,
		CategoryName:  v.CategoryName,
		ReactionCount: v.ReactionCount,
		Reacted:       v.Reacted,
		Saved:         v.Saved,
	}
}

// FromViews converts a list of views. The result is never nil.
func FromViews(vs []*artUC.View) []DTO {
	out := make([]DTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromView(v))
	}
	return out
}

func fromComment(c *artUC.CommentView) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		Author:    author(c.Author),
	}
}

func fromCategories(cs []*entity.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, CategoryDTO{ID: c.ID, Name: c.Name})
	}
	return out
}
