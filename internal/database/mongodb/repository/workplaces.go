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

// workplaceRepository supermarkets / warehouses 共用
type workplaceRepository struct {
	collection *mongo.Collection
}

type SupermarketRepository struct{ workplaceRepository }

type WarehouseRepository struct{ workplaceRepository }

func newWorkplaceRepository(mongoClient *client.MongoClient, name core.MongoCollection) workplaceRepository {
	repository := workplaceRepository{collection: mongoClient.Collection(name)}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.WorkplaceIndexes)
	return repository
}

func NewSupermarketRepository(mongoClient *client.MongoClient) *SupermarketRepository {
	return &SupermarketRepository{newWorkplaceRepository(mongoClient, core.MongoCollectionSupermarkets)}
}

func NewWarehouseRepository(mongoClient *client.MongoClient) *WarehouseRepository {
	return &WarehouseRepository{newWorkplaceRepository(mongoClient, core.MongoCollectionWarehouses)}
}

func (repository *workplaceRepository) List(contextValue context.Context) ([]*model.Workplace, error) {
	return findAll[model.Workplace](contextValue, repository.collection, nil)
}

func (repository *workplaceRepository) GetByID(contextValue context.Context, workplaceID int64) (*model.Workplace, error) {
	var workplace model.Workplace
	if err := repository.collection.FindOne(contextValue, bson.M{"_id": workplaceID}).Decode(&workplace); err != nil {
		return nil, err
	}
	return &workplace, nil
}

func (repository *workplaceRepository) UpsertMany(contextValue context.Context, workplaces []*model.Workplace) (int64, error) {
	nowUTC := time.Now().UTC()
	ids := make([]int64, len(workplaces))
	docs := make([]any, len(workplaces))
	for i, w := range workplaces {
		if w.CreatedAt.IsZero() {
			w.CreatedAt = nowUTC
		}
		w.UpdatedAt = nowUTC
		ids[i], docs[i] = w.ID, w
	}
	return upsertByID(contextValue, repository.collection, ids, docs)
}
