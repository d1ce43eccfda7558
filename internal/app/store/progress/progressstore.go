// internal/app/store/progress/progressstore.go
package progressstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/waypointhub/waypoint/internal/domain/models"
)

// Store owns the canonical per-youth progress aggregate. One document per
// youth (unique index on youth_id), modules embedded, overall score derived
// inside the same write.
type Store struct {
	c *mongo.Collection
}

var (
	ErrScoreOutOfRange = errors.New("score must be between 0 and 100")
	ErrInvalidModuleID = errors.New("module id must be non-empty and must not start with '$'")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("progress")}
}

// ModuleUpdate carries the optional fields of a module upsert. Nil fields
// leave the stored value untouched; on first insert of a module they fall
// back to the defaults (score 0, done false, empty payload).
type ModuleUpdate struct {
	Score   *float64
	Done    *bool
	Payload map[string]any
}

// UpsertModule applies a partial update to one module of a youth's
// aggregate and recomputes the overall score, all inside a single
// aggregation-pipeline update on the youth's document. Concurrent upserts
// to different modules of the same youth therefore cannot lose each other,
// and concurrent upserts to the same module resolve last-committed-wins.
// The document is created lazily on first write; the unique youth_id index
// arbitrates racing first writes and the loser retries onto the winner's
// document.
//
// The overall score is the half-up-rounded mean of all module scores
// (matching the rest of the system's stated rounding rule).
func (s *Store) UpsertModule(ctx context.Context, youthID primitive.ObjectID, moduleID string, upd ModuleUpdate) (models.Progress, error) {
	if moduleID == "" || strings.HasPrefix(moduleID, "$") {
		return models.Progress{}, ErrInvalidModuleID
	}
	if upd.Score != nil && (*upd.Score < 0 || *upd.Score > 100) {
		return models.Progress{}, ErrScoreOutOfRange
	}

	now := time.Now().UTC()
	pipeline := upsertPipeline(youthID, moduleID, upd, now)
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p models.Progress
	var err error
	// Two attempts: a racing first write can lose the upsert insert to the
	// unique youth_id index; the retry lands as a plain update.
	for attempt := 0; attempt < 2; attempt++ {
		err = s.c.FindOneAndUpdate(ctx, bson.M{"youth_id": youthID}, pipeline, opts).Decode(&p)
		if err == nil || !wafflemongo.IsDup(err) {
			break
		}
	}
	if err != nil {
		return models.Progress{}, err
	}
	return p, nil
}

// upsertPipeline builds the two-stage update: stage one replaces or inserts
// the module record (merging unset fields from the existing record or the
// defaults), stage two folds the module scores into overall_score.
func upsertPipeline(youthID primitive.ObjectID, moduleID string, upd ModuleUpdate, now time.Time) bson.A {
	// moduleID is client input; $literal keeps a leading-$ string from ever
	// being read as a field path. The prefix is rejected above regardless.
	mid := bson.M{"$literal": moduleID}
	existing := bson.M{"$ifNull": bson.A{"$modules", bson.A{}}}

	var score any = bson.M{"$ifNull": bson.A{"$$cur.score", 0.0}}
	if upd.Score != nil {
		score = *upd.Score
	}
	var done any = bson.M{"$ifNull": bson.A{"$$cur.done", false}}
	if upd.Done != nil {
		done = *upd.Done
	}
	var payload any = bson.M{"$ifNull": bson.A{"$$cur.payload", bson.M{"$literal": bson.M{}}}}
	if upd.Payload != nil {
		payload = bson.M{"$literal": upd.Payload}
	}

	record := bson.M{
		"module_id":  mid,
		"score":      score,
		"done":       done,
		"payload":    payload,
		"updated_at": now,
	}

	modules := bson.M{"$let": bson.M{
		"vars": bson.M{"cur": bson.M{"$arrayElemAt": bson.A{
			bson.M{"$filter": bson.M{
				"input": existing,
				"as":    "m",
				"cond":  bson.M{"$eq": bson.A{"$$m.module_id", mid}},
			}},
			0,
		}}},
		"in": bson.M{"$concatArrays": bson.A{
			bson.M{"$filter": bson.M{
				"input": existing,
				"as":    "m",
				"cond":  bson.M{"$ne": bson.A{"$$m.module_id", mid}},
			}},
			bson.A{record},
		}},
	}}

	return bson.A{
		bson.M{"$set": bson.M{
			"youth_id":   youthID,
			"created_at": bson.M{"$ifNull": bson.A{"$created_at", now}},
			"updated_at": now,
			"modules":    modules,
		}},
		// Half-up rounding; scores are non-negative so floor(x+0.5) is exact.
		bson.M{"$set": bson.M{
			"overall_score": bson.M{"$toInt": bson.M{"$floor": bson.M{"$add": bson.A{
				bson.M{"$ifNull": bson.A{bson.M{"$avg": "$modules.score"}, 0.0}},
				0.5,
			}}}},
		}},
	}
}

// GetByYouth returns the youth's aggregate. A youth with no progress yet
// yields mongo.ErrNoDocuments; callers treat that as an empty view, not a
// fault.
func (s *Store) GetByYouth(ctx context.Context, youthID primitive.ObjectID) (models.Progress, error) {
	var p models.Progress
	if err := s.c.FindOne(ctx, bson.M{"youth_id": youthID}).Decode(&p); err != nil {
		return models.Progress{}, err
	}
	return p, nil
}

// GetByYouths fetches the aggregates for the given youths, sorted by
// youth_id for deterministic fan-out reads. Youths with no aggregate are
// simply absent from the result.
func (s *Store) GetByYouths(ctx context.Context, youthIDs []primitive.ObjectID) ([]models.Progress, error) {
	if len(youthIDs) == 0 {
		return []models.Progress{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "youth_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"youth_id": bson.M{"$in": youthIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Progress{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
