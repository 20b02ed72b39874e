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

var ErrToolNotFound = errors.New("tool not found")

type ToolRepository interface {
	List(ctx context.Context) ([]domain.Tool, error)
	Get(ctx context.Context, id string) (*domain.Tool, error)
	Create(ctx context.Context, tool *domain.Tool) error
	Update(ctx context.Context, id string, tool *domain.Tool) (*domain.Tool, error)
	Delete(ctx context.Context, id string) (*domain.Tool, error)
	Count(ctx context.Context) (int64, error)
}

type toolRepository struct {
	collection *mongo.Collection
}

func NewToolRepository(db *mongo.Database) ToolRepository {
	return &toolRepository{collection: db.Collection("tools")}
}

func (r *toolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	defer cursor.Close(ctx)

	tools := make([]domain.Tool, 0)
	if err := cursor.All(ctx, &tools); err != nil {
		return nil, fmt.Errorf("failed to decode tools: %w", err)
	}

	return tools, nil
}

func (r *toolRepository) Get(ctx context.Context, id string) (*domain.Tool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrToolNotFound
	}

	var tool domain.Tool
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&tool)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}

	return &tool, nil
}

func (r *toolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	now := time.Now()
	tool.CreatedAt = now
	tool.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tool)
	if err != nil {
		return fmt.Errorf("failed to create tool: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tool.ID = oid
	}
	return nil
}

func (r *toolRepository) Update(ctx context.Context, id string, tool *domain.Tool) (*domain.Tool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrToolNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"name":        tool.Name,
			"brand":       tool.Brand,
			"category":    tool.Category,
			"quantity":    tool.Quantity,
			"description": tool.Description,
			"price":       tool.Price,
			"color":       tool.Colors,
			"image":       tool.Images,
			"updatedAt":   time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Tool
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to update tool: %w", err)
	}

	return &updated, nil
}

func (r *toolRepository) Delete(ctx context.Context, id string) (*domain.Tool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrToolNotFound
	}

	var deleted domain.Tool
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to delete tool: %w", err)
	}

	return &deleted, nil
}

func (r *toolRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count tools: %w", err)
	}
	return count, nil
}
