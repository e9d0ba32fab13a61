package database

import (
	"context"
	"fmt"
	"time"

	"homefinder-listings/internal/utils"
	"homefinder-listings/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes lists the indexes each collection needs.
var collectionIndexes = map[string][]mongo.IndexModel{
	"properties": {
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "zip", Value: 1}}},
		{Keys: bson.D{{Key: "propertyType", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	"contacts": {
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "propertyId", Value: 1}}},
	},
	"users": {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
}

// CreateIndexes creates the listing, contact and user indexes.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for name, models := range collectionIndexes {
		start := time.Now()
		_, err := db.Collection(name).Indexes().CreateMany(ctx, models)
		utils.RecordDBOperationDuration("mongo", "create_indexes", name, start)
		if err != nil {
			utils.RecordDBError("mongo", "create_indexes", name)
			logger.GlobalLogger.Errorf("Failed to create indexes on %s: %v", name, err)
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}

	logger.GlobalLogger.Println("MongoDB indexes created successfully.")
	return nil
}
