package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/repository"
)

type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (repo *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	const query = `
SELECT id, name
FROM categories
WHERE id = $1
LIMIT 1`
	var c entity.Category
	err := conn(ctx, repo.db).QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &c, nil
}

func (repo *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	const query = `
SELECT id, name
FROM categories
WHERE name = $1
LIMIT 1`
	var c entity.Category
	err := conn(ctx, repo.db).QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByName: %w", err)
	}
	return &c, nil
}

func (repo *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	const query = `
SELECT id, name
FROM categories
ORDER BY id ASC`
	rows, err := conn(ctx, repo.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*entity.Category, 0, 16)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	const query = `
INSERT INTO categories (name)
VALUES ($1)
RETURNING id`
	err := conn(ctx, repo.db).QueryRowContext(ctx, query, category.Name).Scan(&category.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", &entity.ValidationError{Field: "name", Message: "is already taken"})
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
