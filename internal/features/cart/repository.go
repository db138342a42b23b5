package cart

import (
	"context"
	"time"

	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository interface {
	FindByUser(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteStale(ctx context.Context, olderThan time.Time) (int64, error)
}

type PricingRuleRepository interface {
	ListActive(ctx context.Context) ([]PricingRule, error)
	Create(ctx context.Context, rule *PricingRule) error
	Delete(ctx context.Context, id string) error
}

type CartRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCartRepository(db *database.MongodbDB) CartRepository {
	return &CartRepositoryImpl{
		collection: db.DB.Collection("carts"),
	}
}

func (r *CartRepositoryImpl) FindByUser(ctx context.Context, userID string) (*Cart, error) {
	var cart Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return &Cart{UserID: userID, Items: []CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepositoryImpl) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": cart.UserID},
		bson.M{"$set": bson.M{
			"userId":    cart.UserID,
			"items":     cart.Items,
			"updatedAt": cart.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *CartRepositoryImpl) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}

// DeleteStale drops carts untouched since olderThan. Used by the purge job.
func (r *CartRepositoryImpl) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"updatedAt": bson.M{"$lt": olderThan}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type PricingRuleRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPricingRuleRepository(db *database.MongodbDB) PricingRuleRepository {
	return &PricingRuleRepositoryImpl{
		collection: db.DB.Collection("pricing_rules"),
	}
}

func (r *PricingRuleRepositoryImpl) ListActive(ctx context.Context) ([]PricingRule, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": "active"},
		options.Find().SetSort(bson.M{"priority": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []PricingRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *PricingRuleRepositoryImpl) Create(ctx context.Context, rule *PricingRule) error {
	rule.ID = primitive.NewObjectID()
	rule.CreatedAt = time.Now()
	if rule.Status == "" {
		rule.Status = "active"
	}

	_, err := r.collection.InsertOne(ctx, rule)
	return err
}

func (r *PricingRuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
