package repository

import (
	"context"
	"time"

	"backoffice/internal/core"
	client "backoffice/internal/database/client"
	"backoffice/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type AddressRepository struct {
	collection *mongo.Collection
}

func NewAddressRepository(mongoClient *client.MongoClient) *AddressRepository {
	return &AddressRepository{collection: mongoClient.Collection(core.MongoCollectionAddresses)}
}

func (repository *AddressRepository) List(contextValue context.Context) ([]*model.Address, error) {
	return findAll[model.Address](contextValue, repository.collection, nil)
}

func (repository *AddressRepository) UpsertMany(contextValue context.Context, addresses []*model.Address) (int64, error) {
	nowUTC := time.Now().UTC()
	ids := make([]int64, len(addresses))
	docs := make([]any, len(addresses))
	for i, a := range addresses {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = nowUTC
		}
		a.UpdatedAt = nowUTC
		ids[i], docs[i] = a.ID, a
	}
	return upsertByID(contextValue, repository.collection, ids, docs)
}
