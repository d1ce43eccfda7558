// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a facilitator-owned cohort of youths.
//
// NOTE:
//   - Members is the embedded, authoritative member set. Appends go through
//     the group store's atomic add so concurrent enrollments cannot lose
//     an entry.
//   - FacilitatorID is immutable after creation; there is no transfer of
//     ownership.
type Group struct {
	ID            primitive.ObjectID   `bson:"_id" json:"id"`
	Name          string               `bson:"name" json:"name"`
	FacilitatorID primitive.ObjectID   `bson:"facilitator_id" json:"facilitatorId"`
	Members       []primitive.ObjectID `bson:"members" json:"members"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
