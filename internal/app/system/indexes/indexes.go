// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes below are load-bearing, not advisory: application-level
find-then-insert is racy, so email uniqueness and the one-aggregate-per-
youth invariant are enforced here, at the storage layer.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureProgress(ctx, db); err != nil {
		problems = append(problems, "progress: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_email_ci").SetUnique(true),
		},
		// Facilitator dashboards look youths up by owner.
		{
			Keys:    bson.D{{Key: "facilitator_id", Value: 1}},
			Options: options.Index().SetName("idx_users_facilitator"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection("groups"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "facilitator_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_groups_facilitator"),
		},
	})
}

func ensureProgress(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection("progress"), []mongo.IndexModel{
		// One aggregate per youth. The upsert in the progress store relies
		// on this index to arbitrate racing first writes.
		{
			Keys:    bson.D{{Key: "youth_id", Value: 1}},
			Options: options.Index().SetName("uniq_progress_youth").SetUnique(true),
		},
	})
}

func createIndexes(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	start := time.Now()
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	zap.L().Info("ensured indexes",
		zap.String("collection", coll.Name()),
		zap.Strings("indexes", names),
		zap.String("took", time.Since(start).String()))
	return nil
}
