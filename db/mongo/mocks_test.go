package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockCollection struct {
	insertOneFunc func(ctx context.Context, document any) (*mongo.InsertOneResult, error)
	findOneFunc   func(ctx context.Context, filter any) *mongo.SingleResult
	updateOneFunc func(ctx context.Context, filter, update any) (*mongo.UpdateResult, error)
	deleteOneFunc func(ctx context.Context, filter any) (*mongo.DeleteResult, error)
}

func (m mockCollection) InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	return m.insertOneFunc(ctx, document)
}

func (m mockCollection) FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult {
	return m.findOneFunc(ctx, filter)
}

func (m mockCollection) UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return m.updateOneFunc(ctx, filter, update)
}

func (m mockCollection) DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return m.deleteOneFunc(ctx, filter)
}
