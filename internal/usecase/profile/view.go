package profile

import "guidepedia/internal/domain/entity"

// UserView is the public face of a user.
type UserView struct {
	ID                int64
	Username          string
	Avatar            string
	Bio               string
	SubscriberCount   int
	SubscriptionCount int
	SavedCount        int
}

func newUserView(u *entity.User) *UserView {
	return &UserView{
		ID:                u.ID,
		Username:          u.Username,
		Avatar:            u.Avatar,
		Bio:               u.Bio,
		SubscriberCount:   u.Subscribers.Len(),
		SubscriptionCount: u.Subscriptions.Len(),
		SavedCount:        u.SavedArticles.Len(),
	}
}

func newUserViews(users []*entity.User) []*UserView {
	out := make([]*UserView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out
}

// ProfileView is a user's profile as seen by a viewer. Login and CardDetails
// are only filled in when the viewer looks at their own profile.
type ProfileView struct {
	UserView
	Login       string
	CardDetails string
	Subscribed  bool
	Self        bool
}
