package audit

import (
	"context"
	"time"

	"go-storefront/internal/common/models"
	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	Insert(ctx context.Context, log *models.AuditLog) error
	ListByModule(ctx context.Context, module, recordID string, limit int64) ([]models.AuditLog, error)
}

type AuditRepositoryImpl struct {
	collection *mongo.Collection
}

func NewAuditRepository(db *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		collection: db.DB.Collection("audit_logs"),
	}
}

func (r *AuditRepositoryImpl) Insert(ctx context.Context, log *models.AuditLog) error {
	log.ID = primitive.NewObjectID()
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, log)
	return err
}

func (r *AuditRepositoryImpl) ListByModule(ctx context.Context, module, recordID string, limit int64) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	filter := bson.M{}
	if module != "" {
		filter["module"] = module
	}
	if recordID != "" {
		filter["record_id"] = recordID
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
