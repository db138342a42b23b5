package category

import (
	"context"
	"time"

	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	FindByID(ctx context.Context, id string) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id string, category *Category) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type CategoryRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *database.MongodbDB) CategoryRepository {
	return &CategoryRepositoryImpl{
		collection: db.DB.Collection("categories"),
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *Category) (*Category, error) {
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	if category.Status == "" {
		category.Status = "active"
	}

	_, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id string) (*Category, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var category Category
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]Category, error) {
	return r.find(ctx, bson.M{})
}

func (r *CategoryRepositoryImpl) ListActive(ctx context.Context) ([]Category, error) {
	return r.find(ctx, bson.M{"status": "active"})
}

func (r *CategoryRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Category, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, id string, category *Category) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"status":      category.Status,
		"updatedAt":   time.Now(),
	}}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *CategoryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"slug": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}
