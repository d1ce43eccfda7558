// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/waypointhub/waypoint/internal/domain/models"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

var ErrNotFound = errors.New("group not found")

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("groups"),
		users: db.Collection("users"),
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	if g.Members == nil {
		g.Members = []primitive.ObjectID{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// AddMember appends a youth to the group's member set. The append uses
// $addToSet on the single group document, so concurrent enrollments into
// the same group cannot lose an entry and re-adding the same youth is a
// no-op rather than a duplicate.
func (s *Store) AddMember(ctx context.Context, groupID, youthID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$addToSet": bson.M{"members": youthID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByFacilitator returns all groups owned by the facilitator, newest
// first.
func (s *Store) ListByFacilitator(ctx context.Context, facilitatorID primitive.ObjectID) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"facilitator_id": facilitatorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Member is the projection of a youth returned by Members.
type Member struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// Members resolves the group's member set to user records. The query
// filters on role=youth even though the membership invariant already
// guarantees it; a drifted record must not leak through this read.
func (s *Store) Members(ctx context.Context, groupID primitive.ObjectID) ([]Member, error) {
	g, err := s.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(g.Members) == 0 {
		return []Member{}, nil
	}

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "email": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.users.Find(ctx, bson.M{
		"_id":  bson.M{"$in": g.Members},
		"role": models.RoleYouth,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	members := []Member{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
