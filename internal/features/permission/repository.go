package permission

import (
	"context"
	"time"

	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PermissionRepository interface {
	Create(ctx context.Context, p *Permission) error
	FindByID(ctx context.Context, id string) (*Permission, error)
	List(ctx context.Context) ([]Permission, error)
	Update(ctx context.Context, id string, p *Permission) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type RolePermissionRepository interface {
	Grant(ctx context.Context, role, permission string) error
	Revoke(ctx context.Context, role, permission string) error
	RevokeAllForRole(ctx context.Context, role string) error
	List(ctx context.Context) ([]RolePermission, error)
	ListByRole(ctx context.Context, role string) ([]RolePermission, error)
}

type PermissionRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPermissionRepository(mongodb *database.MongodbDB) PermissionRepository {
	return &PermissionRepositoryImpl{
		Collection: mongodb.DB.Collection("permissions"),
	}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, p *Permission) error {
	_, err := r.Collection.InsertOne(ctx, p)
	return err
}

func (r *PermissionRepositoryImpl) FindByID(ctx context.Context, id string) (*Permission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var p Permission
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]Permission, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perms []Permission
	if err := cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) Update(ctx context.Context, id string, p *Permission) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"updated_at":  p.UpdatedAt,
	}})
	return err
}

func (r *PermissionRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *PermissionRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type RolePermissionRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRolePermissionRepository(mongodb *database.MongodbDB) RolePermissionRepository {
	return &RolePermissionRepositoryImpl{
		Collection: mongodb.DB.Collection("role_permissions"),
	}
}

func (r *RolePermissionRepositoryImpl) Grant(ctx context.Context, role, permission string) error {
	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"role": role, "permission": permission},
		bson.M{"$setOnInsert": bson.M{
			"role":       role,
			"permission": permission,
			"created_at": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *RolePermissionRepositoryImpl) Revoke(ctx context.Context, role, permission string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"role": role, "permission": permission})
	return err
}

func (r *RolePermissionRepositoryImpl) RevokeAllForRole(ctx context.Context, role string) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{"role": role})
	return err
}

func (r *RolePermissionRepositoryImpl) List(ctx context.Context) ([]RolePermission, error) {
	return r.find(ctx, bson.M{})
}

func (r *RolePermissionRepositoryImpl) ListByRole(ctx context.Context, role string) ([]RolePermission, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *RolePermissionRepositoryImpl) find(ctx context.Context, filter bson.M) ([]RolePermission, error) {
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pairs []RolePermission
	if err := cursor.All(ctx, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
