package store

import (
	"context"
	"time"

	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StoreRepository interface {
	Create(ctx context.Context, s *Store) (*Store, error)
	FindByID(ctx context.Context, id string) (*Store, error)
	List(ctx context.Context) ([]Store, error)
	Update(ctx context.Context, id string, s *Store) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type StoreRepositoryImpl struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *database.MongodbDB) StoreRepository {
	return &StoreRepositoryImpl{
		collection: db.DB.Collection("stores"),
	}
}

func (r *StoreRepositoryImpl) Create(ctx context.Context, s *Store) (*Store, error) {
	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	if s.Status == "" {
		s.Status = "active"
	}

	_, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StoreRepositoryImpl) FindByID(ctx context.Context, id string) (*Store, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var s Store
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepositoryImpl) List(ctx context.Context) ([]Store, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stores []Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoreRepositoryImpl) Update(ctx context.Context, id string, s *Store) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":      s.Name,
		"code":      s.Code,
		"address":   s.Address,
		"phone":     s.Phone,
		"status":    s.Status,
		"updatedAt": time.Now(),
	}}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (r *StoreRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *StoreRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"code": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}
