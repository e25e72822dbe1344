package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client *mongo.Client
	mu     sync.Mutex
)

var (
	ErrNoURI        = errors.New("MONGO_URI is not defined in environment")
	ErrNotConnected = errors.New("storage client not initialized")
)

// Connect creates the shared client. The driver dials lazily, so this is
// cheap; Ping verifies the server is actually reachable. Safe to call more
// than once.
func Connect(uri string) error {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		return nil
	}
	if uri == "" {
		return ErrNoURI
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(45 * time.Second)

	c, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return err
	}
	client = c
	return nil
}

func GetCollection(dbName, name string) *mongo.Collection {
	return client.Database(dbName).Collection(name)
}

// Ping reports whether the storage connection is usable.
func Ping(ctx context.Context) error {
	mu.Lock()
	c := client
	mu.Unlock()
	if c == nil {
		return ErrNotConnected
	}
	return c.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique ISBN index on the books collection.
func EnsureIndexes(ctx context.Context, books *mongo.Collection) error {
	_, err := books.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func Disconnect(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	return err
}
