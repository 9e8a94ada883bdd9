package model

import (
	"time"

	"backoffice/internal/organization"
)

type Address struct {
	ID        int64     `json:"id" bson:"_id"`
	Street    string    `json:"street" bson:"street"`
	City      string    `json:"city" bson:"city"`
	Zip       string    `json:"zip" bson:"zip"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (a *Address) ToDomain() organization.Address {
	return organization.Address{ID: a.ID, Street: a.Street, City: a.City, Zip: a.Zip}
}
