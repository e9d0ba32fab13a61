package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"homefinder-listings/internal/models"
	"homefinder-listings/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type mongoUserRepository struct {
	db *mongo.Database
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{db: db}
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	collection := r.db.Collection(usersCollection)
	start := time.Now()
	err := collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	utils.RecordDBOperationDuration("mongo", "find_one", usersCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		utils.RecordDBError("mongo", "find_one", usersCollection)
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	id, err := nextSequence(ctx, r.db, usersCollection)
	if err != nil {
		return err
	}
	user.ID = id
	user.Email = strings.ToLower(user.Email)

	collection := r.db.Collection(usersCollection)
	start := time.Now()
	_, err = collection.InsertOne(ctx, user)
	utils.RecordDBOperationDuration("mongo", "insert", usersCollection, start)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		utils.RecordDBError("mongo", "insert", usersCollection)
		return err
	}
	return nil
}
