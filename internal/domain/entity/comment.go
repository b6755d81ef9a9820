package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength bounds comment text, counted in runes.
const MaxCommentLength = 2000

// Comment is a leaf entity attached to an article.
type Comment struct {
	ID        int64
	ArticleID int64
	AuthorID  int64
	Text      string
	CreatedAt time.Time
}

// Validate checks the comment text.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if utf8.RuneCountInString(c.Text) > MaxCommentLength {
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("must be at most %d characters", MaxCommentLength),
		}
	}
	return nil
}
