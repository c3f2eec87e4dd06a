package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// counters allocates strictly increasing per-kind ids via an atomic $inc on
// a one-document-per-kind collection. Ids survive restarts and are never
// reused after deletes.
type counters struct {
	col *mongo.Collection
}

func newCounters(db *mongo.Database) *counters {
	return &counters{col: db.Collection(collectionCounters)}
}

func (c *counters) next(ctx context.Context, kind string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int `bson:"seq"`
	}
	err := c.col.FindOneAndUpdate(ctx,
		bson.M{"_id": kind},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", kind, err)
	}
	return doc.Seq, nil
}
