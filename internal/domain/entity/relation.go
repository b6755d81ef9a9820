package entity

import "slices"

// RelationKind names one of the toggleable many-to-many relationships.
type RelationKind string

const (
	// RelationReaction links a user to an article they reacted to.
	RelationReaction RelationKind = "reaction"
	// RelationSave links a user to an article they saved for later.
	RelationSave RelationKind = "save"
	// RelationSubscription links a subscriber to the user they follow.
	RelationSubscription RelationKind = "subscription"
)

// RelationKinds lists every supported kind.
var RelationKinds = []RelationKind{RelationReaction, RelationSave, RelationSubscription}

// IsValid reports whether k is a supported relation kind.
func (k RelationKind) IsValid() bool {
	return slices.Contains(RelationKinds, k)
}

// TargetKind returns the entity kind on the target side of the relation.
func (k RelationKind) TargetKind() Kind {
	if k == RelationSubscription {
		return KindUser
	}
	return KindArticle
}

func (k RelationKind) String() string {
	return string(k)
}
