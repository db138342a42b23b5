package permission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission names follow the "<Module>_Read" / "<Module>_Write" convention,
// e.g. "Users_Read" or "Orders_Write".
type Permission struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// RolePermission is the many-to-many join between roles and permissions,
// keyed by names rather than ids so the pairs read naturally in exports.
type RolePermission struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Role       string             `json:"role" bson:"role"`
	Permission string             `json:"permission" bson:"permission"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// Set is an effective permission snapshot, computed once per request and
// read-only afterwards.
type Set map[string]struct{}

func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	return names
}
