package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes sets up indexes for the audit trail collection.
// Safe to call on every boot.
func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	audits := db.Collection("audit_logs")
	_, err := audits.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_request_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_actor_created"),
		},
		{
			Keys:    bson.D{{Key: "path", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_path_created"),
		},
	})
	return err
}
