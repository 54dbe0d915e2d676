// ================== internal/database/mongo.go ==================
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CategoriesCollection = "categories"
	TasksCollection      = "tasks"
	UsersCollection      = "users"
)

// Config represents database configuration
type Config struct {
	URI     string
	DBName  string
	Timeout time.Duration
	MaxPool uint64
	MinPool uint64
}

// MongoDB is the process-wide store handle. It is built once in main and
// handed to every repository.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect opens the client and pings the primary before returning.
func Connect(ctx context.Context, cfg Config) (*MongoDB, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPool > 0 {
		clientOptions.SetMaxPoolSize(cfg.MaxPool)
	}
	clientOptions.SetMinPoolSize(cfg.MinPool)
	clientOptions.SetMaxConnIdleTime(30 * time.Second)
	clientOptions.SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return New(client, cfg.DBName), nil
}

// New wraps an existing client, e.g. one built by tests.
func New(client *mongo.Client, dbName string) *MongoDB {
	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDB) Categories() *mongo.Collection {
	return m.Database.Collection(CategoriesCollection)
}

func (m *MongoDB) Tasks() *mongo.Collection {
	return m.Database.Collection(TasksCollection)
}

func (m *MongoDB) Users() *mongo.Collection {
	return m.Database.Collection(UsersCollection)
}

// EnsureIndexes creates the indexes the repositories rely on. Only the
// identity key is unique; category names may repeat.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := m.Categories().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("categories indexes: %w", err)
	}

	if _, err := m.Tasks().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("tasks indexes: %w", err)
	}

	if _, err := m.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "provider", Value: 1}, {Key: "providerUserId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	return nil
}

// HealthCheck pings the primary and runs a trivial command on the database.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if err := m.Database.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("database access failed: %w", err)
	}
	return nil
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
