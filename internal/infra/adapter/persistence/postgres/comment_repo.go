package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/repository"
)

type CommentRepo struct{ db *sql.DB }

func NewCommentRepo(db *sql.DB) repository.CommentRepository {
	return &CommentRepo{db: db}
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	const query = `
INSERT INTO comments (article_id, author_id, text, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := conn(ctx, repo.db).QueryRowContext(ctx, query,
		comment.ArticleID, comment.AuthorID, comment.Text, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CommentRepo) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Comment, error) {
	const query = `
SELECT id, article_id, author_id, text, created_at
FROM comments
WHERE article_id = $1
ORDER BY created_at ASC, id ASC`
	rows, err := conn(ctx, repo.db).QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("ListByArticle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*entity.Comment, 0, 20)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByArticle: Scan: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
