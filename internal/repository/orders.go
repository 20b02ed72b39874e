package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/toolhub/backoffice/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStats is one snapshot of the completed-order aggregation. "Completed"
// means every status except pending and cancelled.
type OrderStats struct {
	Orders    int64
	Revenue   float64
	Customers int64
}

type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	CompletedStats(ctx context.Context, createdBefore time.Time) (*OrderStats, error)
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection("orders")}
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]domain.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order domain.Order
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// UpdateStatus is a single atomic read-modify-write on the order document.
// Concurrent updates to the same order are last-write-wins.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order domain.Order
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// CompletedStats aggregates order count, revenue and distinct customers over
// non-pending, non-cancelled orders. A zero createdBefore means no time
// filter; a non-zero value restricts to orders created before that instant.
func (r *orderRepository) CompletedStats(ctx context.Context, createdBefore time.Time) (*OrderStats, error) {
	filter := bson.M{
		"status": bson.M{"$nin": bson.A{domain.StatusPending, domain.StatusCancelled}},
	}
	if !createdBefore.IsZero() {
		filter["createdAt"] = bson.M{"$lt": createdBefore}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode revenue: %w", err)
	}

	var revenue float64
	if len(totals) > 0 {
		revenue = totals[0].Total
	}

	emails, err := r.collection.Distinct(ctx, "customerEmail", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct customers: %w", err)
	}

	return &OrderStats{
		Orders:    count,
		Revenue:   revenue,
		Customers: int64(len(emails)),
	}, nil
}
