// internal/domain/models/progress.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModuleProgress is one youth's state for one content module.
// Payload is opaque client data; it is stored and returned verbatim and
// never interpreted by the server.
type ModuleProgress struct {
	ModuleID  string         `bson:"module_id" json:"moduleId"`
	Score     float64        `bson:"score" json:"score"`
	Done      bool           `bson:"done" json:"done"`
	Payload   map[string]any `bson:"payload" json:"payload"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updatedAt"`
}

// Progress is the single per-youth aggregate document. YouthID is unique
// across the collection and Modules holds at most one entry per module id;
// both are enforced by storage (unique index, single-document updates).
//
// OverallScore is derived: the rounded mean of all module scores at the
// time of the last write, 0 when no modules exist. Rounding is half-up
// (73.5 rounds to 74).
type Progress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	YouthID      primitive.ObjectID `bson:"youth_id" json:"youthId"`
	OverallScore int                `bson:"overall_score" json:"overallScore"`
	Modules      []ModuleProgress   `bson:"modules" json:"modules"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Module returns the record for the given module id, if present.
func (p Progress) Module(moduleID string) (ModuleProgress, bool) {
	for _, m := range p.Modules {
		if m.ModuleID == moduleID {
			return m, true
		}
	}
	return ModuleProgress{}, false
}
