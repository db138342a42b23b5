package order

import (
	"context"
	"fmt"
	"time"

	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	ListSince(ctx context.Context, since time.Time) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type OrderRepositoryImpl struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *database.MongodbDB) OrderRepository {
	return &OrderRepositoryImpl{
		collection: db.DB.Collection("orders"),
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, o *Order) (*Order, error) {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.Number == "" {
		o.Number = fmt.Sprintf("ORD-%s", o.ID.Hex()[18:])
	}

	_, err := r.collection.InsertOne(ctx, o)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string) (*Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var o Order
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context) ([]Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepositoryImpl) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return r.find(ctx, bson.M{"customerId": customerID})
}

func (r *OrderRepositoryImpl) ListSince(ctx context.Context, since time.Time) ([]Order, error) {
	return r.find(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

func (r *OrderRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Order, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
	return err
}
