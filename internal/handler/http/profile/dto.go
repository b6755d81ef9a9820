// Package profile provides HTTP handlers for profiles, saved articles and
// subscriptions.
package profile

import profUC "guidepedia/internal/usecase/profile"

// UserDTO is the public face of a user.
type UserDTO struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Avatar            string `json:"avatar,omitempty"`
	Bio               string `json:"bio,omitempty"`
	SubscriberCount   int    `json:"subscriber_count"`
	SubscriptionCount int    `json:"subscription_count"`
	SavedCount        int    `json:"saved_count"`
}

// ProfileDTO is a profile as seen by the viewer. Login and card details are
// only present on the viewer's own profile.
type ProfileDTO struct {
	UserDTO
	Login       string `json:"login,omitempty"`
	CardDetails string `json:"card_details,omitempty"`
	Subscribed  bool   `json:"subscribed"`
	Self        bool   `json:"self"`
}

type updateRequest struct {
	Username    *string `json:"username" validate:"omitnil,max=64"`
	Avatar      *string `json:"avatar" validate:"omitnil,max=2048"`
	Bio         *string `json:"bio" validate:"omitnil,max=1000"`
	CardDetails *string `json:"card_details" validate:"omitnil,max=64"`
}

func fromUser(u *profUC.UserView) UserDTO {
	return UserDTO{
		ID:                u.ID,
		Username:          u.Username,
		Avatar:            u.Avatar,
		Bio:               u.Bio,
		SubscriberCount:   u.SubscriberCount,
		SubscriptionCount: u.SubscriptionCount,
		SavedCount:        u.SavedCount,
	}
}

func fromUsers(us []*profUC.UserView) []UserDTO {
	out := make([]UserDTO, 0, len(us))
	for _, u := range us {
		out = append(out, fromUser(u))
	}
	return out
}

func fromProfile(p *profUC.ProfileView) ProfileDTO {
	return ProfileDTO{
		UserDTO:     fromUser(&p.UserView),
		Login:       p.Login,
		CardDetails: p.CardDetails,
		Subscribed:  p.Subscribed,
		Self:        p.Self,
	}
}
