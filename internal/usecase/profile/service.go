// Package profile provides the user-facing profile, save and subscription
// use cases.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/observability/logging"
	"guidepedia/internal/repository"
	"guidepedia/internal/usecase/aggregate"
	"guidepedia/internal/usecase/article"
	"guidepedia/internal/usecase/lookup"
	"guidepedia/internal/usecase/relation"
)

// UpdateInput carries optional profile changes. Nil fields are left unchanged.
type UpdateInput struct {
	Username    *string
	Avatar      *string
	Bio         *string
	CardDetails *string
}

// Service provides profile use cases.
type Service struct {
	Tx       repository.Transactor
	Guard    *lookup.Guard
	Engine   *relation.Engine
	Reader   *aggregate.Reader
	Articles *article.Service
}

// ToggleSavedArticle sets whether the viewer has saved the article and
// returns the viewer afterwards.
func (s *Service) ToggleSavedArticle(ctx context.Context, articleID int64, present bool, viewerID int64) (*UserView, error) {
	a, err := s.Guard.Article(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !a.VisibleTo(viewerID) {
		return nil, entity.NewNotFound(entity.KindArticle, articleID)
	}
	out, err := s.Engine.Toggle(ctx, relation.Request{
		Kind:     entity.RelationSave,
		ActorID:  viewerID,
		TargetID: articleID,
		Present:  present,
	})
	if err != nil {
		return nil, err
	}
	return newUserView(out.Actor), nil
}

// ListSavedArticles lists the articles the viewer saved.
func (s *Service) ListSavedArticles(ctx context.Context, viewerID int64) ([]*article.View, error) {
	saved, err := s.Reader.SavedArticles(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.Articles.Views(ctx, saved, viewerID)
}

// ToggleSubscription sets whether the viewer subscribes to the target and
// returns the target afterwards.
func (s *Service) ToggleSubscription(ctx context.Context, targetID int64, present bool, viewerID int64) (*UserView, error) {
	out, err := s.Engine.Toggle(ctx, relation.Request{
		Kind:     entity.RelationSubscription,
		ActorID:  viewerID,
		TargetID: targetID,
		Present:  present,
	})
	if err != nil {
		return nil, err
	}
	return newUserView(out.TargetUser), nil
}

// ListSubscribers lists the viewer's subscribers.
func (s *Service) ListSubscribers(ctx context.Context, viewerID int64) ([]*UserView, error) {
	return s.ListSubscribersOf(ctx, viewerID, viewerID)
}

// ListSubscriptions lists the users the viewer subscribes to.
func (s *Service) ListSubscriptions(ctx context.Context, viewerID int64) ([]*UserView, error) {
	return s.ListSubscriptionsOf(ctx, viewerID, viewerID)
}

// ListSubscribersOf lists the subscribers of another user.
func (s *Service) ListSubscribersOf(ctx context.Context, viewerID, targetID int64) ([]*UserView, error) {
	if _, err := s.Guard.User(ctx, viewerID); err != nil {
		return nil, err
	}
	users, err := s.Reader.Subscribers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return newUserViews(users), nil
}

// ListSubscriptionsOf lists the users another user subscribes to.
func (s *Service) ListSubscriptionsOf(ctx context.Context, viewerID, targetID int64) ([]*UserView, error) {
	if _, err := s.Guard.User(ctx, viewerID); err != nil {
		return nil, err
	}
	users, err := s.Reader.Subscriptions(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return newUserViews(users), nil
}

// Get returns the viewer's own profile.
func (s *Service) Get(ctx context.Context, viewerID int64) (*ProfileView, error) {
	return s.GetByID(ctx, viewerID, viewerID)
}

// GetByID returns the target's profile annotated with whether the viewer
// subscribes to it.
func (s *Service) GetByID(ctx context.Context, viewerID, targetID int64) (*ProfileView, error) {
	pv, err := s.Reader.Profile(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	return newProfileView(pv, viewerID), nil
}

func newProfileView(pv *aggregate.ProfileView, viewerID int64) *ProfileView {
	out := &ProfileView{
		UserView:   *newUserView(pv.User),
		Subscribed: pv.Subscribed,
		Self:       pv.User.ID == viewerID,
	}
	if out.Self {
		out.Login = pv.User.Login
		out.CardDetails = pv.User.CardDetails
	}
	return out
}

// Update changes the viewer's profile fields. Provided values are trimmed.
func (s *Service) Update(ctx context.Context, viewerID int64, in UpdateInput) (*ProfileView, error) {
	patch := entity.ProfilePatch{
		Username:    trimmed(in.Username),
		Avatar:      trimmed(in.Avatar),
		Bio:         trimmed(in.Bio),
		CardDetails: trimmed(in.CardDetails),
	}
	if patch.Username != nil && *patch.Username == "" {
		return nil, &entity.ValidationError{Field: "username", Message: "must not be empty"}
	}

	var updated *entity.User
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.Guard.User(ctx, viewerID)
		if err != nil {
			return err
		}
		if err := patch.Apply(u); err != nil {
			return err
		}
		if err := s.Guard.Users.Save(ctx, u); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("profile updated", slog.Int64("user_id", viewerID))
	return newProfileView(&aggregate.ProfileView{
		User:              updated,
		Subscribed:        updated.Subscribers.Contains(viewerID),
		SubscriberCount:   updated.Subscribers.Len(),
		SubscriptionCount: updated.Subscriptions.Len(),
	}, viewerID), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
