package entity

import (
	"fmt"
	"unicode/utf8"
)

// Profile field limits.
const (
	MaxUsernameLength    = 64
	MaxAvatarLength      = 2048
	MaxBioLength         = 1000
	MaxCardDetailsLength = 64
)

// User represents a platform account together with its relationship sets.
//
// SavedArticles, Subscriptions and ArticlesReaction are owned by the user.
// Subscribers is the mirror of other users' Subscriptions.
type User struct {
	ID          int64
	Login       string
	Username    string
	Avatar      string
	Bio         string
	CardDetails string
	Version     int64

	SavedArticles    IDSet
	Subscribers      IDSet
	Subscriptions    IDSet
	ArticlesReaction IDSet
}

// ProfilePatch carries optional profile changes. Nil fields are left untouched.
type ProfilePatch struct {
	Username    *string
	Avatar      *string
	Bio         *string
	CardDetails *string
}

// Apply validates the patch and copies the provided fields onto the user.
// Nothing is written when validation fails.
func (p ProfilePatch) Apply(u *User) error {
	checks := []struct {
		field string
		value *string
		max   int
	}{
		{"username", p.Username, MaxUsernameLength},
		{"avatar", p.Avatar, MaxAvatarLength},
		{"bio", p.Bio, MaxBioLength},
		{"card_details", p.CardDetails, MaxCardDetailsLength},
	}
	for _, c := range checks {
		if c.value != nil && utf8.RuneCountInString(*c.value) > c.max {
			return &ValidationError{
				Field:   c.field,
				Message: fmt.Sprintf("must be at most %d characters", c.max),
			}
		}
	}

	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.CardDetails != nil {
		u.CardDetails = *p.CardDetails
	}
	return nil
}

// Clone returns a deep copy, including the relationship sets.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.SavedArticles = u.SavedArticles.Clone()
	c.Subscribers = u.Subscribers.Clone()
	c.Subscriptions = u.Subscriptions.Clone()
	c.ArticlesReaction = u.ArticlesReaction.Clone()
	return &c
}
