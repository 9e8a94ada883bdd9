package repository

import (
	"context"

	"backoffice/internal/core"
	client "backoffice/internal/database/client"
	"backoffice/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterRepository 為 int64 主鍵配發遞增序號
type CounterRepository struct {
	collection *mongo.Collection
}

func NewCounterRepository(mongoClient *client.MongoClient) *CounterRepository {
	return &CounterRepository{collection: mongoClient.Collection(core.MongoCollectionCounters)}
}

// NextID 原子遞增並回傳新的序號
func (repository *CounterRepository) NextID(contextValue context.Context, name core.MongoCollection) (int64, error) {
	var counter model.Counter
	err := repository.collection.FindOneAndUpdate(
		contextValue,
		bson.M{"_id": string(name)},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Reserve 確保序號不小於 seq（匯入既有 id 後呼叫）
func (repository *CounterRepository) Reserve(contextValue context.Context, name core.MongoCollection, seq int64) error {
	_, err := repository.collection.UpdateOne(
		contextValue,
		bson.M{"_id": string(name)},
		bson.M{"$max": bson.M{"seq": seq}},
		options.Update().SetUpsert(true),
	)
	return err
}
