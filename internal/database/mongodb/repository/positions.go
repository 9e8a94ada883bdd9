package repository

import (
	"context"
	"time"

	"backoffice/internal/core"
	client "backoffice/internal/database/client"
	"backoffice/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PositionRepository struct {
	collection *mongo.Collection
	counters   *CounterRepository
}

func NewPositionRepository(mongoClient *client.MongoClient, counters *CounterRepository) *PositionRepository {
	repository := &PositionRepository{
		collection: mongoClient.Collection(core.MongoCollectionPositions),
		counters:   counters,
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.PositionIndexes)
	return repository
}

func (repository *PositionRepository) List(contextValue context.Context) ([]*model.Position, error) {
	return findAll[model.Position](contextValue, repository.collection, nil)
}

func (repository *PositionRepository) GetByID(contextValue context.Context, positionID int64) (*model.Position, error) {
	var position model.Position
	if err := repository.collection.FindOne(contextValue, bson.M{"_id": positionID}).Decode(&position); err != nil {
		return nil, err
	}
	return &position, nil
}

// Create 名稱重複時回傳 mongo 的 duplicate key 錯誤
func (repository *PositionRepository) Create(contextValue context.Context, position *model.Position) (_ *model.Position, returnedError error) {
	if position.ID == 0 {
		id, err := repository.counters.NextID(contextValue, core.MongoCollectionPositions)
		if err != nil {
			return nil, err
		}
		position.ID = id
	}
	nowUTC := time.Now().UTC()
	position.CreatedAt = nowUTC
	position.UpdatedAt = nowUTC

	if _, returnedError = repository.collection.InsertOne(contextValue, position); returnedError != nil {
		return nil, returnedError
	}
	return position, nil
}

func (repository *PositionRepository) Replace(contextValue context.Context, position *model.Position) (matchedCount int64, returnedError error) {
	update := bson.M{"$set": bson.M{
		"name":     position.Name,
		"category": position.Category,
	}}
	result, err := repository.collection.UpdateOne(contextValue, bson.M{"_id": position.ID}, withUpdatedAt(update))
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (repository *PositionRepository) DeleteByID(contextValue context.Context, positionID int64) (deletedCount int64, returnedError error) {
	result, err := repository.collection.DeleteOne(contextValue, bson.M{"_id": positionID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// UpsertMany 匯入既有 id 並推進序號
func (repository *PositionRepository) UpsertMany(contextValue context.Context, positions []*model.Position) (int64, error) {
	nowUTC := time.Now().UTC()
	ids := make([]int64, len(positions))
	docs := make([]any, len(positions))
	var maxID int64
	for i, p := range positions {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = nowUTC
		}
		p.UpdatedAt = nowUTC
		ids[i], docs[i] = p.ID, p
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	count, err := upsertByID(contextValue, repository.collection, ids, docs)
	if err != nil {
		return count, err
	}
	return count, repository.counters.Reserve(contextValue, core.MongoCollectionPositions, maxID)
}
