package auth

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

// Repository handles database interactions for identities
type Repository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewRepository expects the unique (provider, providerUserId) index to be
// created at startup.
func NewRepository(collection *mongo.Collection) *Repository {
	return &Repository{collection: collection, now: time.Now}
}

// Upsert creates the identity on first login and refreshes the profile
// fields on later ones. createdAt is only written on insert.
func (r *Repository) Upsert(ctx context.Context, profile Profile) (*Identity, error) {
	if profile.Provider == "" {
		profile.Provider = ProviderGitHub
	}
	filter := bson.M{"provider": profile.Provider, "providerUserId": profile.ProviderUserID}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var identity Identity
	err := r.collection.FindOneAndUpdate(ctx, filter, upsertDocument(profile, r.now().UTC()), opts).Decode(&identity)
	if err == nil {
		return &identity, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("upsert identity: %w", err)
	}

	err = r.collection.FindOne(ctx, filter).Decode(&identity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load identity: %w", err)
	}
	return &identity, nil
}

// FindByID returns nil, nil for unknown or malformed ids.
func (r *Repository) FindByID(ctx context.Context, id string) (*Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var identity Identity
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&identity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return &identity, nil
}

func upsertDocument(profile Profile, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"username":  profile.Username,
			"email":     profile.Email,
			"avatarUrl": profile.AvatarURL,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"provider":       profile.Provider,
			"providerUserId": profile.ProviderUserID,
			"createdAt":      now,
		},
	}
}
