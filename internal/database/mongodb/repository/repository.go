package repository

import (
	"context"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 統一管理所有 MongoDB repository
type MongoDBRepository struct {
	Positions    *PositionRepository
	Supermarkets *SupermarketRepository
	Warehouses   *WarehouseRepository
	Addresses    *AddressRepository
	Employees    *EmployeeRepository
	Counters     *CounterRepository
}

func NewMongoDBRepository(
	positions *PositionRepository,
	supermarkets *SupermarketRepository,
	warehouses *WarehouseRepository,
	addresses *AddressRepository,
	employees *EmployeeRepository,
	counters *CounterRepository,
) *MongoDBRepository {
	return &MongoDBRepository{
		Positions:    positions,
		Supermarkets: supermarkets,
		Warehouses:   warehouses,
		Addresses:    addresses,
		Employees:    employees,
		Counters:     counters,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewCounterRepository,
	NewPositionRepository,
	NewSupermarketRepository,
	NewWarehouseRepository,
	NewAddressRepository,
	NewEmployeeRepository,
	NewMongoDBRepository)

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

// findAll 依 _id 由小到大讀出整個結果集
func findAll[T any](ctx context.Context, collection *mongo.Collection, filter bson.M) ([]*T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*T{}
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		results = append(results, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// upsertByID 以 _id 整份覆寫（seed 用）
func upsertByID(ctx context.Context, collection *mongo.Collection, ids []int64, docs []any) (int64, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	writes := make([]mongo.WriteModel, len(docs))
	for i, doc := range docs {
		writes[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": ids[i]}).
			SetReplacement(doc).
			SetUpsert(true)
	}
	result, err := collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return result.UpsertedCount + result.ModifiedCount, nil
}
