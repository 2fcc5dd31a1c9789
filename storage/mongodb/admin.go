package mongodb

import (
	"context"
	"time"

	adminModel "msc-booking/models/admin"
	"msc-booking/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type adminRepo struct {
	coll *mongo.Collection
}

func (r *adminRepo) Create(ctx context.Context, a *adminModel.Admin) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicateKey
	}
	return err
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*adminModel.Admin, error) {
	var a adminModel.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
