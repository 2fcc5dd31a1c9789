package mongodb

import (
	"context"

	counterModel "msc-booking/models/counter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sequenceRepo struct {
	coll *mongo.Collection
}

// Next uses a single findOneAndUpdate with $inc so the increment-and-fetch
// is atomic on the server; a read-then-write pair would lose updates under
// concurrent callers.
func (r *sequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counterModel.Counter
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c); err != nil {
		return 0, err
	}
	return c.Seq, nil
}

// EnsureAtLeast uses $max so concurrent seeders can never lower a counter
// that another process already pushed higher.
func (r *sequenceRepo) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	filter := bson.M{"_id": name}
	update := bson.M{"$max": bson.M{"seq": floor}}
	opts := options.Update().SetUpsert(true)

	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}
