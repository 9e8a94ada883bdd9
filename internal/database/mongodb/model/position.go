package model

import (
	"time"

	"backoffice/internal/organization"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Position struct {
	ID   int64  `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	// 舊資料可能沒有分類，讀取時以名稱推斷
	Category  string    `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

var PositionIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("uniq_name").SetUnique(true),
	},
}

func (p *Position) ToDomain() organization.Position {
	return organization.NewPosition(p.ID, p.Name, organization.Category(p.Category))
}

// PositionFromDomain 不處理 CreatedAt / UpdatedAt，由 repository 填入
func PositionFromDomain(p organization.Position) *Position {
	return &Position{ID: p.ID, Name: p.Name, Category: string(p.Category)}
}
