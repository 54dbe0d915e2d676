package tasks

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

// Repository handles database interactions for tasks
type Repository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewRepository(collection *mongo.Collection) *Repository {
	return &Repository{collection: collection, now: time.Now}
}

// List returns tasks newest first, optionally only those in one category.
func (r *Repository) List(ctx context.Context, filter Filter) ([]Task, error) {
	query := bson.M{}
	if filter.CategoryID != nil {
		query["categoryId"] = *filter.CategoryID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (r *Repository) Create(ctx context.Context, in NewTask) (*Task, error) {
	now := r.now().UTC()
	task := &Task{
		Title:       in.Title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert task: unexpected id type %T", result.InsertedID)
	}
	task.ID = oid
	return task, nil
}

// Update applies the patch atomically and returns the new document, or
// nil, nil when no task matched.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*Task, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task Task
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, updateDocument(patch, r.now().UTC()), opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// updateDocument always refreshes updatedAt.
func updateDocument(patch Patch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsCompleted != nil {
		set["isCompleted"] = *patch.IsCompleted
	}

	update := bson.M{"$set": set}
	switch {
	case patch.UnsetCategory:
		update["$unset"] = bson.M{"categoryId": ""}
	case patch.CategoryID != nil:
		set["categoryId"] = *patch.CategoryID
	}
	return update
}
