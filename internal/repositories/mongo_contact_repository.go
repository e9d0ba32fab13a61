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

const contactsCollection = "contacts"

type MongoContactRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{db: db, collection: db.Collection(contactsCollection)}
}

func (r *MongoContactRepository) FindAll(ctx context.Context) ([]models.Contact, error) {
	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: -1}}))
	utils.RecordDBOperationDuration("mongo", "find", contactsCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "find", contactsCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		utils.RecordDBError("mongo", "cursor_all", contactsCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return contacts, nil
}

func (r *MongoContactRepository) FindByID(ctx context.Context, id int64) (*models.Contact, error) {
	start := time.Now()
	var contact models.Contact
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&contact)
	utils.RecordDBOperationDuration("mongo", "find_one", contactsCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		utils.RecordDBError("mongo", "find_one", contactsCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &contact, nil
}

func (r *MongoContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	id, err := nextSequence(ctx, r.db, contactsCollection)
	if err != nil {
		return fmt.Errorf("allocate contact id: %w", err)
	}
	contact.ID = id

	start := time.Now()
	_, err = r.collection.InsertOne(ctx, contact)
	utils.RecordDBOperationDuration("mongo", "insert", contactsCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "insert", contactsCollection)
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *MongoContactRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	utils.RecordDBOperationDuration("mongo", "delete_one", contactsCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "delete_one", contactsCollection)
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *MongoContactRepository) UpdateStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error) {
	start := time.Now()
	var contact models.Contact
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&contact)
	utils.RecordDBOperationDuration("mongo", "update_status", contactsCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		utils.RecordDBError("mongo", "update_status", contactsCollection)
		return nil, fmt.Errorf("update contact %d: %w", id, err)
	}
	return &contact, nil
}

func (r *MongoContactRepository) Seed(ctx context.Context, items []models.Contact) error {
	count, err := r.collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count contacts: %w", err)
	}
	if count > 0 || len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	var maxID int64
	for _, c := range items {
		docs = append(docs, c)
		maxID = max(maxID, c.ID)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		utils.RecordDBError("mongo", "insert_many", contactsCollection)
		return fmt.Errorf("seed contacts: %w", err)
	}
	return raiseSequence(ctx, r.db, contactsCollection, maxID)
}
