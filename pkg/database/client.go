package database

import (
	"context"
	"fmt"
	"time"

	"homefinder-listings/internal/utils"
	"homefinder-listings/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a client, pings it and returns the named database.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetMaxPoolSize(100)

	start := time.Now()
	client, err := mongo.Connect(ctx, clientOptions)
	utils.RecordDBOperationDuration("mongo", "connect", "", start)
	if err != nil {
		utils.RecordDBError("mongo", "connect", "")
		logger.GlobalLogger.Errorf("failed to connect to MongoDB: %v", err)
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	start = time.Now()
	err = client.Ping(ctx, nil)
	utils.RecordDBOperationDuration("mongo", "ping", "", start)
	if err != nil {
		utils.RecordDBError("mongo", "ping", "")
		client.Disconnect(ctx)
		logger.GlobalLogger.Errorf("failed to ping MongoDB: %v", err)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GlobalLogger.Println("MongoDB connected successfully.")
	return client, client.Database(dbName), nil
}

// CloseMongo disconnects the client.
func CloseMongo(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	err := client.Disconnect(ctx)
	utils.RecordDBOperationDuration("mongo", "disconnect", "", start)
	if err != nil {
		utils.RecordDBError("mongo", "disconnect", "")
		logger.GlobalLogger.Errorf("Error closing MongoDB: %v", err)
	} else {
		logger.GlobalLogger.Println("MongoDB connection closed")
	}
}
