package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

// Archive defines the interface for business snapshot storage.
type Archive interface {
	SaveSnapshot(ctx context.Context, snapshot models.BusinessSnapshot) error
}

// MongoDBArchive implements the Archive interface for MongoDB.
type MongoDBArchive struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBArchive creates a new MongoDB snapshot archive.
func NewMongoDBArchive(ctx context.Context, uri string, dbName string) (*MongoDBArchive, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBArchive{
		client:   client,
		dbName:   dbName,
		collName: "business_snapshots",
	}, nil
}

// SaveSnapshot stores one daily business snapshot.
func (r *MongoDBArchive) SaveSnapshot(ctx context.Context, snapshot models.BusinessSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err := collection.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to insert business snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBArchive) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
