package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Variant struct {
	Label string  `json:"label" bson:"label"`
	SKU   string  `json:"sku" bson:"sku"`
	Price float64 `json:"price" bson:"price"`
	Stock int     `json:"stock" bson:"stock"`
}

type Product struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Slug           string             `json:"slug" bson:"slug"`
	Description    string             `json:"description" bson:"description"`
	Price          float64            `json:"price" bson:"price"`
	OnSale         bool               `json:"onSale" bson:"onSale"`
	SalePrice      float64            `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	CategoryID     string             `json:"categoryId" bson:"categoryId"`
	Images         []string           `json:"images" bson:"images"`
	Variants       []Variant          `json:"variants" bson:"variants"`
	Stock          int                `json:"stock" bson:"stock"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// EffectivePrice is what the storefront charges right now.
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}
