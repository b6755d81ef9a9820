package db

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed seeds/categories.sql
var seedCategoriesSQL string

// schema is applied in order. Every statement is idempotent.
var schema = []string{
	`
CREATE TABLE IF NOT EXISTS users (
    id           BIGSERIAL PRIMARY KEY,
    login        TEXT NOT NULL UNIQUE,
    username     TEXT NOT NULL DEFAULT '',
    avatar       TEXT NOT NULL DEFAULT '',
    bio          TEXT NOT NULL DEFAULT '',
    card_details TEXT NOT NULL DEFAULT '',
    version      BIGINT NOT NULL DEFAULT 1,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS categories (
    id   BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,
	`
CREATE TABLE IF NOT EXISTS articles (
    id          BIGSERIAL PRIMARY KEY,
    author_id   BIGINT NOT NULL REFERENCES users(id),
    category_id BIGINT NOT NULL REFERENCES categories(id),
    title       TEXT NOT NULL,
    text        TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    draft       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    version     BIGINT NOT NULL DEFAULT 1
)`,
	`
CREATE TABLE IF NOT EXISTS comments (
    id         BIGSERIAL PRIMARY KEY,
    article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    author_id  BIGINT NOT NULL REFERENCES users(id),
    text       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS article_reactions (
    user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, article_id)
)`,
	`
CREATE TABLE IF NOT EXISTS saved_articles (
    user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, article_id)
)`,
	`
CREATE TABLE IF NOT EXISTS subscriptions (
    subscriber_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    target_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (subscriber_id, target_id),
    CONSTRAINT chk_no_self_subscription CHECK (subscriber_id <> target_id)
)`,
	// Listing by category, newest first.
	`CREATE INDEX IF NOT EXISTS idx_articles_category_created ON articles(category_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_article_created ON comments(article_id, created_at)`,
	// Reverse lookups for the mirror sets.
	`CREATE INDEX IF NOT EXISTS idx_article_reactions_article ON article_reactions(article_id)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_articles_article ON saved_articles(article_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_target ON subscriptions(target_id)`,
}

// MigrateUp creates the schema and seeds the default categories.
func MigrateUp(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}

	// Duplicates are skipped by ON CONFLICT.
	if _, err := db.Exec(seedCategoriesSQL); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	return nil
}

// MigrateDown drops every table in reverse dependency order.
// Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS subscriptions`,
		`DROP TABLE IF EXISTS saved_articles`,
		`DROP TABLE IF EXISTS article_reactions`,
		`DROP TABLE IF EXISTS comments`,
		`DROP TABLE IF EXISTS articles`,
		`DROP TABLE IF EXISTS categories`,
		`DROP TABLE IF EXISTS users`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
