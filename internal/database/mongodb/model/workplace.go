package model

import (
	"time"

	"backoffice/internal/organization"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Workplace supermarkets 與 warehouses 兩個集合共用的文件格式
type Workplace struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	AddressID int64     `json:"addressId,omitempty" bson:"addressId,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

var WorkplaceIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("idx_name"),
	},
}

func (w *Workplace) ToDomain(kind organization.WorkplaceKind) organization.Workplace {
	if kind == organization.WorkplaceWarehouse {
		return organization.Warehouse(w.ID, w.Name)
	}
	return organization.Supermarket(w.ID, w.Name)
}
