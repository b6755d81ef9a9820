package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/repository"
)

type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = `id, author_id, category_id, title, text, description, draft, created_at, version`

func scanArticle(row interface{ Scan(dest ...any) error }) (*entity.Article, error) {
	var a entity.Article
	if err := row.Scan(&a.ID, &a.AuthorID, &a.CategoryID, &a.Title, &a.Text,
		&a.Description, &a.Draft, &a.CreatedAt, &a.Version); err != nil {
		return nil, err
	}
	return &a, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	q := conn(ctx, repo.db)
	query := `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1` + lockClause(ctx)
	a, err := scanArticle(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if err := attachArticleSets(ctx, q, []*entity.Article{a}); err != nil {
		return nil, fmt.Errorf("Get: relations: %w", err)
	}
	return a, nil
}

func (repo *ArticleRepo) GetMany(ctx context.Context, ids []int64) ([]*entity.Article, error) {
	if len(ids) == 0 {
		return []*entity.Article{}, nil
	}
	q := conn(ctx, repo.db)
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE id IN (%s)`, articleColumns, placeholders(len(ids)))
	rows, err := q.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found := make(map[int64]*entity.Article, len(ids))
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("GetMany: Scan: %w", err)
		}
		found[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}

	articles := make([]*entity.Article, 0, len(found))
	for _, id := range ids {
		if a, ok := found[id]; ok {
			articles = append(articles, a)
			delete(found, id)
		}
	}
	if err := attachArticleSets(ctx, q, articles); err != nil {
		return nil, fmt.Errorf("GetMany: relations: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE category_id = $1
ORDER BY created_at DESC, id DESC`
	q := conn(ctx, repo.db)
	rows, err := q.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("ListByCategory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 20)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByCategory: Scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByCategory: %w", err)
	}
	if err := attachArticleSets(ctx, q, articles); err != nil {
		return nil, fmt.Errorf("ListByCategory: relations: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (author_id, category_id, title, text, description, draft, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, version`
	err := conn(ctx, repo.db).QueryRowContext(ctx, query,
		article.AuthorID, article.CategoryID, article.Title, article.Text,
		article.Description, article.Draft, article.CreatedAt,
	).Scan(&article.ID, &article.Version)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Save(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles
SET category_id = $2, title = $3, text = $4, description = $5, draft = $6, version = version + 1
WHERE id = $1 AND version = $7`
	res, err := conn(ctx, repo.db).ExecContext(ctx, query,
		article.ID, article.CategoryID, article.Title, article.Text,
		article.Description, article.Draft, article.Version)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err := checkVersioned(res, entity.KindArticle, article.ID); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	article.Version++
	return nil
}
