package file

import (
	"context"
	"time"

	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FileRepository interface {
	Insert(ctx context.Context, f *StoredFile) error
	FindByID(ctx context.Context, id string) (*StoredFile, error)
	Delete(ctx context.Context, id string) error
}

type FileRepositoryImpl struct {
	collection *mongo.Collection
}

func NewFileRepository(db *database.MongodbDB) FileRepository {
	return &FileRepositoryImpl{
		collection: db.DB.Collection("files"),
	}
}

func (r *FileRepositoryImpl) Insert(ctx context.Context, f *StoredFile) error {
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, f)
	return err
}

func (r *FileRepositoryImpl) FindByID(ctx context.Context, id string) (*StoredFile, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var f StoredFile
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&f)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
