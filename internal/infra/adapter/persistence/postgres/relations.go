package postgres

import (
	"context"
	"fmt"

	"guidepedia/internal/domain/entity"
)

// Relation labels used by the set-loading queries.
const (
	relSaved        = "saved"
	relReaction     = "reaction"
	relSubscription = "subscription"
	relSubscriber   = "subscriber"
)

// userSetsQuery loads all four user-side sets for a batch of users.
// Each branch reuses the same placeholder list.
const userSetsQuery = `
SELECT user_id AS owner, 'saved' AS rel, article_id AS ref, created_at FROM saved_articles WHERE user_id IN (%[1]s)
UNION ALL
SELECT user_id, 'reaction', article_id, created_at FROM article_reactions WHERE user_id IN (%[1]s)
UNION ALL
SELECT subscriber_id, 'subscription', target_id, created_at FROM subscriptions WHERE subscriber_id IN (%[1]s)
UNION ALL
SELECT target_id, 'subscriber', subscriber_id, created_at FROM subscriptions WHERE target_id IN (%[1]s)
ORDER BY created_at, ref`

// articleSetsQuery loads both article-side mirror sets for a batch of articles.
const articleSetsQuery = `
SELECT article_id AS owner, 'reaction' AS rel, user_id AS ref, created_at FROM article_reactions WHERE article_id IN (%[1]s)
UNION ALL
SELECT article_id, 'saved', user_id, created_at FROM saved_articles WHERE article_id IN (%[1]s)
ORDER BY created_at, ref`

type relationRow struct {
	owner int64
	rel   string
	ref   int64
}

func loadRelations(ctx context.Context, q queryer, query string, ids []int64) ([]relationRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := q.QueryContext(ctx, fmt.Sprintf(query, placeholders(len(ids))), idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []relationRow
	for rows.Next() {
		var (
			r       relationRow
			created any
		)
		if err := rows.Scan(&r.owner, &r.rel, &r.ref, &created); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func attachUserSets(ctx context.Context, q queryer, users []*entity.User) error {
	byID := make(map[int64]*entity.User, len(users))
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}
	rels, err := loadRelations(ctx, q, userSetsQuery, ids)
	if err != nil {
		return err
	}
	for _, r := range rels {
		u := byID[r.owner]
		if u == nil {
			continue
		}
		switch r.rel {
		case relSaved:
			u.SavedArticles.Add(r.ref)
		case relReaction:
			u.ArticlesReaction.Add(r.ref)
		case relSubscription:
			u.Subscriptions.Add(r.ref)
		case relSubscriber:
			u.Subscribers.Add(r.ref)
		}
	}
	return nil
}

func attachArticleSets(ctx context.Context, q queryer, articles []*entity.Article) error {
	byID := make(map[int64]*entity.Article, len(articles))
	ids := make([]int64, 0, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	rels, err := loadRelations(ctx, q, articleSetsQuery, ids)
	if err != nil {
		return err
	}
	for _, r := range rels {
		a := byID[r.owner]
		if a == nil {
			continue
		}
		switch r.rel {
		case relReaction:
			a.Reactors.Add(r.ref)
		case relSaved:
			a.SavedBy.Add(r.ref)
		}
	}
	return nil
}

// ownedSet describes one join table whose rows are owned by the user side.
type ownedSet struct {
	table    string
	ownerCol string
	refCol   string
	rel      string
	members  func(u *entity.User) entity.IDSet
}

var ownedSets = []ownedSet{
	{"saved_articles", "user_id", "article_id", relSaved, func(u *entity.User) entity.IDSet { return u.SavedArticles }},
	{"article_reactions", "user_id", "article_id", relReaction, func(u *entity.User) entity.IDSet { return u.ArticlesReaction }},
	{"subscriptions", "subscriber_id", "target_id", relSubscription, func(u *entity.User) entity.IDSet { return u.Subscriptions }},
}

// syncOwnedSets writes the difference between the stored join rows and the
// user's in-memory owned sets.
func syncOwnedSets(ctx context.Context, q queryer, u *entity.User) error {
	rels, err := loadRelations(ctx, q, userSetsQuery, []int64{u.ID})
	if err != nil {
		return err
	}
	stored := make(map[string]*entity.IDSet, len(ownedSets))
	for _, s := range ownedSets {
		stored[s.rel] = &entity.IDSet{}
	}
	for _, r := range rels {
		if set, ok := stored[r.rel]; ok {
			set.Add(r.ref)
		}
	}

	for _, s := range ownedSets {
		want := s.members(u)
		have := stored[s.rel]
		for _, ref := range want.IDs() {
			if have.Contains(ref) {
				continue
			}
			query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, s.table, s.ownerCol, s.refCol)
			if _, err := q.ExecContext(ctx, query, u.ID, ref); err != nil {
				return fmt.Errorf("insert %s: %w", s.table, err)
			}
		}
		for _, ref := range have.IDs() {
			if want.Contains(ref) {
				continue
			}
			query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, s.table, s.ownerCol, s.refCol)
			if _, err := q.ExecContext(ctx, query, u.ID, ref); err != nil {
				return fmt.Errorf("delete %s: %w", s.table, err)
			}
		}
	}
	return nil
}
