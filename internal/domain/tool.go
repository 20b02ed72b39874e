package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tool is a catalog item. The bson keys "color" and "image" are plural
// lists; the names are kept for compatibility with the existing collection.
type Tool struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Brand       string             `bson:"brand" json:"brand"`
	Category    string             `bson:"category" json:"category"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Colors      []string           `bson:"color" json:"color"`
	Images      []string           `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
