package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, login, username, avatar, bio, card_details, version`

func scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Login, &u.Username, &u.Avatar, &u.Bio, &u.CardDetails, &u.Version); err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	q := conn(ctx, repo.db)
	query := `
SELECT ` + userColumns + `
FROM users
WHERE id = $1` + lockClause(ctx)
	u, err := scanUser(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if err := attachUserSets(ctx, q, []*entity.User{u}); err != nil {
		return nil, fmt.Errorf("Get: relations: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) GetMany(ctx context.Context, ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	q := conn(ctx, repo.db)
	query := fmt.Sprintf(`
SELECT %s
FROM users
WHERE id IN (%s)`, userColumns, placeholders(len(ids)))
	rows, err := q.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found := make(map[int64]*entity.User, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("GetMany: Scan: %w", err)
		}
		found[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}

	users := make([]*entity.User, 0, len(found))
	for _, id := range ids {
		if u, ok := found[id]; ok {
			users = append(users, u)
			delete(found, id)
		}
	}
	if err := attachUserSets(ctx, q, users); err != nil {
		return nil, fmt.Errorf("GetMany: relations: %w", err)
	}
	return users, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (login, username, avatar, bio, card_details)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, version`
	err := conn(ctx, repo.db).QueryRowContext(ctx, query,
		user.Login, user.Username, user.Avatar, user.Bio, user.CardDetails,
	).Scan(&user.ID, &user.Version)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", &entity.ValidationError{Field: "login", Message: "is already taken"})
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Save(ctx context.Context, user *entity.User) error {
	const query = `
UPDATE users
SET username = $2, avatar = $3, bio = $4, card_details = $5, version = version + 1
WHERE id = $1 AND version = $6`
	q := conn(ctx, repo.db)
	res, err := q.ExecContext(ctx, query,
		user.ID, user.Username, user.Avatar, user.Bio, user.CardDetails, user.Version)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err := checkVersioned(res, entity.KindUser, user.ID); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err := syncOwnedSets(ctx, q, user); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	user.Version++
	return nil
}
