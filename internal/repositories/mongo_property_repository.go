package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homefinder-listings/internal/models"
	"homefinder-listings/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const propertiesCollection = "properties"

type MongoPropertyRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoPropertyRepository(db *mongo.Database) *MongoPropertyRepository {
	return &MongoPropertyRepository{
		db:         db,
		collection: db.Collection(propertiesCollection),
	}
}

func (r *MongoPropertyRepository) FindAll(ctx context.Context) ([]models.Property, error) {
	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	utils.RecordDBOperationDuration("mongo", "find", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "find", propertiesCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	start = time.Now()
	err = cursor.All(ctx, &properties)
	utils.RecordDBOperationDuration("mongo", "cursor_all", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "cursor_all", propertiesCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return properties, nil
}

func (r *MongoPropertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	start := time.Now()
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&property)
	utils.RecordDBOperationDuration("mongo", "find_one", propertiesCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		utils.RecordDBError("mongo", "find_one", propertiesCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &property, nil
}

func (r *MongoPropertyRepository) Create(ctx context.Context, property *models.Property) error {
	id, err := nextSequence(ctx, r.db, propertiesCollection)
	if err != nil {
		return fmt.Errorf("allocate property id: %w", err)
	}
	property.ID = id

	start := time.Now()
	_, err = r.collection.InsertOne(ctx, property)
	utils.RecordDBOperationDuration("mongo", "insert", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "insert", propertiesCollection)
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (r *MongoPropertyRepository) Update(ctx context.Context, property *models.Property) error {
	start := time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"id": property.ID}, property)
	utils.RecordDBOperationDuration("mongo", "replace_one", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "replace_one", propertiesCollection)
		return fmt.Errorf("update property %d: %w", property.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *MongoPropertyRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	utils.RecordDBOperationDuration("mongo", "delete_one", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "delete_one", propertiesCollection)
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *MongoPropertyRepository) AddImages(ctx context.Context, id int64, images []string) (*models.Property, error) {
	if len(images) > models.MaxImages {
		return nil, fmt.Errorf("%w: %d new images, limit %d", ErrTooManyImages, len(images), models.MaxImages)
	}
	// the size guard makes the push a no-match once the listing is full
	filter := bson.M{
		"id": id,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$images", bson.A{}}}},
			models.MaxImages - len(images),
		}},
	}
	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": images}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	start := time.Now()
	var property models.Property
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&property)
	utils.RecordDBOperationDuration("mongo", "push_images", propertiesCollection, start)
	if err == nil {
		return &property, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RecordDBError("mongo", "push_images", propertiesCollection)
		return nil, fmt.Errorf("add images to property %d: %w", id, err)
	}

	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: property %d has %d of %d images", ErrTooManyImages, id, len(existing.Images), models.MaxImages)
}

// Seed inserts items when the collection is empty and moves the id counter past them.
func (r *MongoPropertyRepository) Seed(ctx context.Context, items []models.Property) error {
	count, err := r.collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count properties: %w", err)
	}
	if count > 0 || len(items) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(items))
	var maxID int64
	for _, p := range items {
		docs = append(docs, p)
		maxID = max(maxID, p.ID)
	}
	start := time.Now()
	_, err = r.collection.InsertMany(ctx, docs)
	utils.RecordDBOperationDuration("mongo", "insert_many", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "insert_many", propertiesCollection)
		return fmt.Errorf("seed properties: %w", err)
	}
	return raiseSequence(ctx, r.db, propertiesCollection, maxID)
}
