package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushire/campushire/internal/models"
)

type AuditRepository interface {
	Insert(ctx context.Context, e *models.AuditEntry) error
	ListByActor(ctx context.Context, actorID uint, limit int64) ([]models.AuditEntry, error)
}

type auditRepo struct {
	col *mongo.Collection
}

func NewAuditRepo(db *mongo.Database) AuditRepository {
	return &auditRepo{col: db.Collection("audit_logs")}
}

func (r *auditRepo) Insert(ctx context.Context, e *models.AuditEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *auditRepo) ListByActor(ctx context.Context, actorID uint, limit int64) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	cur, err := r.col.Find(ctx,
		bson.M{"actor_id": actorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AuditEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
