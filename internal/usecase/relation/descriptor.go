package relation

import (
	"context"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/usecase/lookup"
)

// target is the resolved target side of a toggle.
type target struct {
	forward *entity.IDSet
	user    *entity.User
	article *entity.Article
	save    func(ctx context.Context, g *lookup.Guard) error
}

// descriptor says which sets a relation kind touches on each side.
type descriptor struct {
	allowSelf bool
	inverse   func(actor *entity.User) *entity.IDSet
	load      func(ctx context.Context, g *lookup.Guard, id int64) (*target, error)
}

var descriptors = map[entity.RelationKind]descriptor{
	entity.RelationReaction: {
		allowSelf: true,
		inverse:   func(u *entity.User) *entity.IDSet { return &u.ArticlesReaction },
		load:      articleTarget(func(a *entity.Article) *entity.IDSet { return &a.Reactors }),
	},
	entity.RelationSave: {
		allowSelf: true,
		inverse:   func(u *entity.User) *entity.IDSet { return &u.SavedArticles },
		load:      articleTarget(func(a *entity.Article) *entity.IDSet { return &a.SavedBy }),
	},
	entity.RelationSubscription: {
		allowSelf: false,
		inverse:   func(u *entity.User) *entity.IDSet { return &u.Subscriptions },
		load:      userTarget(func(u *entity.User) *entity.IDSet { return &u.Subscribers }),
	},
}

func articleTarget(forward func(*entity.Article) *entity.IDSet) func(context.Context, *lookup.Guard, int64) (*target, error) {
	return func(ctx context.Context, g *lookup.Guard, id int64) (*target, error) {
		a, err := g.Article(ctx, id)
		if err != nil {
			return nil, err
		}
		return &target{
			forward: forward(a),
			article: a,
			save: func(ctx context.Context, g *lookup.Guard) error {
				return g.Articles.Save(ctx, a)
			},
		}, nil
	}
}

func userTarget(forward func(*entity.User) *entity.IDSet) func(context.Context, *lookup.Guard, int64) (*target, error) {
	return func(ctx context.Context, g *lookup.Guard, id int64) (*target, error) {
		u, err := g.User(ctx, id)
		if err != nil {
			return nil, err
		}
		return &target{
			forward: forward(u),
			user:    u,
			save: func(ctx context.Context, g *lookup.Guard) error {
				return g.Users.Save(ctx, u)
			},
		}, nil
	}
}
