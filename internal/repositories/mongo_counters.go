package repositories

import (
	"context"
	"time"

	"homefinder-listings/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// nextSequence hands out integer ids per collection, since listings and
// contacts are addressed by number rather than ObjectID.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	start := time.Now()
	err := db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&doc)
	utils.RecordDBOperationDuration("mongo", "next_sequence", countersCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "next_sequence", countersCollection)
		return 0, err
	}
	return doc.Seq, nil
}

// raiseSequence makes sure the next id handed out is above floor.
func raiseSequence(ctx context.Context, db *mongo.Database, name string, floor int64) error {
	start := time.Now()
	_, err := db.Collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true))
	utils.RecordDBOperationDuration("mongo", "raise_sequence", countersCollection, start)
	if err != nil {
		utils.RecordDBError("mongo", "raise_sequence", countersCollection)
	}
	return err
}
