package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerName     string             `bson:"customerName" json:"customerName"`
	CustomerEmail    string             `bson:"customerEmail" json:"customerEmail"`
	Phone            string             `bson:"phone" json:"phone"`
	ShippingAddress  string             `bson:"shippingAddress" json:"shippingAddress"`
	PaymentReference string             `bson:"paymentReference" json:"paymentReference"`
	Items            []OrderItem        `bson:"items" json:"items"`
	Total            float64            `bson:"total" json:"total"`
	Status           OrderStatus        `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem is an embedded snapshot of the product at the time of sale.
// Price and name are copied on order creation and never recomputed from
// the catalog, so the order stays correct after the product changes.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image" json:"image"`
}
