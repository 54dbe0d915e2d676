package categories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for categories
type Repository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewRepository(collection *mongo.Collection) *Repository {
	return &Repository{collection: collection, now: time.Now}
}

// List returns every category, newest first.
func (r *Repository) List(ctx context.Context) ([]Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

func (r *Repository) Create(ctx context.Context, name string) (*Category, error) {
	now := r.now().UTC()
	category := &Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert category: unexpected id type %T", result.InsertedID)
	}
	category.ID = oid
	return category, nil
}

// Exists never fails on a malformed id; it simply reports false.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return count > 0, nil
}

// Update returns nil, nil when no category matched.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*Category, error) {
	update := bson.M{
		"$set": bson.M{
			"name":      patch.Name,
			"updatedAt": r.now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var category Category
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

// Delete reports whether a category was removed. Tasks that point at it keep
// their categoryId.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return result.DeletedCount > 0, nil
}
