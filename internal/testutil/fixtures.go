package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/waypointhub/waypoint/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateFacilitator inserts a facilitator user.
func (f *Fixtures) CreateFacilitator(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, name, email, models.RoleFacilitator, nil, nil)
}

// CreateYouth inserts a youth user bound to a group and its facilitator.
func (f *Fixtures) CreateYouth(ctx context.Context, name, email string, groupID, facilitatorID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.createUser(ctx, name, email, models.RoleYouth, &groupID, &facilitatorID)
}

func (f *Fixtures) createUser(ctx context.Context, name, email string, role models.Role, groupID, facilitatorID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		Email:         email,
		EmailCI:       text.Fold(email),
		Name:          name,
		PasswordHash:  "$2a$10$fixture.not.a.real.hash.............................",
		Role:          role,
		GroupID:       groupID,
		FacilitatorID: facilitatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateGroup inserts a group owned by the facilitator with the given
// members.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, facilitatorID primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	if members == nil {
		members = []primitive.ObjectID{}
	}
	g := models.Group{
		ID:            primitive.NewObjectID(),
		Name:          name,
		FacilitatorID: facilitatorID,
		Members:       members,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}
