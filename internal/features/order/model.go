package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	SKU       string  `json:"sku,omitempty" bson:"sku,omitempty"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Number       string             `json:"number" bson:"number"`
	CustomerID   string             `json:"customerId" bson:"customerId"`
	CustomerName string             `json:"customerName" bson:"customerName"`
	Email        string             `json:"email" bson:"email"`
	StoreID      string             `json:"storeId,omitempty" bson:"storeId,omitempty"`
	Items        []OrderItem        `json:"items" bson:"items"`
	Subtotal     float64            `json:"subtotal" bson:"subtotal"`
	Discount     float64            `json:"discount" bson:"discount"`
	Total        float64            `json:"total" bson:"total"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ValidStatus reports whether s is one of the known order states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
