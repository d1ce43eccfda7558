// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents facilitators and youths.
//
// NOTE:
//   - A youth always carries GroupID and FacilitatorID, set once when the
//     youth is enrolled and never changed afterwards.
//   - A facilitator carries neither.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`

	GroupID       *primitive.ObjectID `bson:"group_id,omitempty" json:"groupId,omitempty"`
	FacilitatorID *primitive.ObjectID `bson:"facilitator_id,omitempty" json:"facilitatorId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
