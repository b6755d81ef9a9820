package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"guidepedia/internal/domain/entity"
	pg "guidepedia/internal/infra/adapter/persistence/postgres"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var userCols = []string{"id", "login", "username", "avatar", "bio", "card_details", "version"}

var relCols = []string{"owner", "rel", "ref", "created_at"}

func userRow(rows *sqlmock.Rows, u *entity.User) *sqlmock.Rows {
	return rows.AddRow(u.ID, u.Login, u.Username, u.Avatar, u.Bio, u.CardDetails, u.Version)
}

/* ─────────────────────────── Get ─────────────────────────── */

func TestUserRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login, username")).
		WithArgs(int64(1)).
		WillReturnRows(userRow(sqlmock.NewRows(userCols), &entity.User{
			ID: 1, Login: "alice", Username: "Alice", Bio: "hi", Version: 4,
		}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM saved_articles WHERE user_id IN ($1)")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(relCols).
			AddRow(int64(1), "saved", int64(10), ts).
			AddRow(int64(1), "reaction", int64(11), ts).
			AddRow(int64(1), "subscription", int64(2), ts).
			AddRow(int64(1), "subscriber", int64(3), ts))

	got, err := pg.NewUserRepo(db).Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}

	want := &entity.User{
		ID: 1, Login: "alice", Username: "Alice", Bio: "hi", Version: 4,
		SavedArticles:    entity.NewIDSet(10),
		ArticlesReaction: entity.NewIDSet(11),
		Subscriptions:    entity.NewIDSet(2),
		Subscribers:      entity.NewIDSet(3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(userCols))

	got, err := pg.NewUserRepo(db).Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Get_InsideTxLocksRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1\nFOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(userRow(sqlmock.NewRows(userCols), &entity.User{ID: 1, Login: "alice", Version: 1}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM saved_articles")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(relCols))
	mock.ExpectCommit()

	repo := pg.NewUserRepo(db)
	err := pg.NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
		u, err := repo.Get(ctx, 1)
		if err != nil {
			return err
		}
		if u == nil {
			return errors.New("missing user")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── GetMany ─────────────────────────── */

func TestUserRepo_GetMany_PreservesRequestedOrder(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(userCols)
	userRow(rows, &entity.User{ID: 1, Login: "a", Version: 1})
	userRow(rows, &entity.User{ID: 3, Login: "c", Version: 1})

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN ($1, $2, $3)")).
		WithArgs(int64(3), int64(2), int64(1)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM saved_articles WHERE user_id IN ($1, $2)")).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(sqlmock.NewRows(relCols))

	got, err := pg.NewUserRepo(db).GetMany(context.Background(), []int64{3, 2, 1})
	if err != nil {
		t.Fatalf("GetMany err=%v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_GetMany_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	got, err := pg.NewUserRepo(db).GetMany(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("GetMany err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── Create ─────────────────────────── */

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "Alice", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(int64(5), int64(1)))

	u := &entity.User{Login: "alice", Username: "Alice"}
	if err := pg.NewUserRepo(db).Create(context.Background(), u); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if u.ID != 5 || u.Version != 1 {
		t.Fatalf("expected id=5 version=1, got id=%d version=%d", u.ID, u.Version)
	}
}

func TestUserRepo_Create_DuplicateLogin(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err := pg.NewUserRepo(db).Create(context.Background(), &entity.User{Login: "alice"})
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

/* ─────────────────────────── Save ─────────────────────────── */

func TestUserRepo_Save_SyncsOwnedSets(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(int64(1), "Alice", "", "", "", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM saved_articles")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(relCols).
			AddRow(int64(1), "saved", int64(10), ts).
			AddRow(int64(1), "subscription", int64(5), ts).
			AddRow(int64(1), "subscriber", int64(7), ts))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO saved_articles (user_id, article_id)")).
		WithArgs(int64(1), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subscriptions WHERE subscriber_id = $1 AND target_id = $2")).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &entity.User{
		ID: 1, Login: "alice", Username: "Alice", Version: 3,
		SavedArticles: entity.NewIDSet(10, 11),
		// Mirror sets are never written from this side.
		Subscribers: entity.NewIDSet(8),
	}
	if err := pg.NewUserRepo(db).Save(context.Background(), u); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	if u.Version != 4 {
		t.Fatalf("expected version 4, got %d", u.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Save_StaleVersion(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	u := &entity.User{ID: 1, Version: 2}
	err := pg.NewUserRepo(db).Save(context.Background(), u)
	if !errors.Is(err, entity.ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
	if u.Version != 2 {
		t.Fatalf("version must stay unchanged on conflict, got %d", u.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
