// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as User, Article, Category and Comment,
// the identifier sets that model their many-to-many relationships, and domain-specific errors.
package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 1000
)

// Article represents an authored article.
// AuthorID is fixed at creation. Reactors and SavedBy are the article-side mirrors
// of User.ArticlesReaction and User.SavedArticles.
type Article struct {
	ID          int64
	AuthorID    int64
	CategoryID  int64
	Title       string
	Text        string
	Description string
	Draft       bool
	CreatedAt   time.Time
	Version     int64

	Reactors IDSet
	SavedBy  IDSet
}

// ReactionCount is derived from the reactor set on every call.
func (a *Article) ReactionCount() int {
	return a.Reactors.Len()
}

// VisibleTo reports whether the viewer may see the article.
// Drafts are only visible to their author.
func (a *Article) VisibleTo(viewerID int64) bool {
	return !a.Draft || a.AuthorID == viewerID
}

// Validate checks the authored fields of the article.
func (a *Article) Validate() error {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must be at most %d characters", maxTitleLength),
		}
	}
	if utf8.RuneCountInString(a.Description) > maxDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("must be at most %d characters", maxDescriptionLength),
		}
	}
	if a.AuthorID <= 0 {
		return &ValidationError{Field: "author", Message: "must be positive"}
	}
	if a.CategoryID <= 0 {
		return &ValidationError{Field: "category", Message: "must be positive"}
	}
	return nil
}

// Clone returns a deep copy, including the relationship sets.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	c.Reactors = a.Reactors.Clone()
	c.SavedBy = a.SavedBy.Clone()
	return &c
}
