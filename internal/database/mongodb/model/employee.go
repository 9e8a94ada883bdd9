package model

import (
	"time"

	"backoffice/internal/organization"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Employee struct {
	ID            int64                 `json:"id" bson:"_id"`
	FirstName     string                `json:"firstName" bson:"firstName"`
	LastName      string                `json:"lastName" bson:"lastName"`
	PositionID    int64                 `json:"positionId" bson:"positionId"`
	WorkplaceKind string                `json:"workplaceKind" bson:"workplaceKind"`
	WorkplaceID   int64                 `json:"workplaceId,omitempty" bson:"workplaceId,omitempty"`
	ManagerID     int64                 `json:"managerId,omitempty" bson:"managerId,omitempty"`
	Salary        *primitive.Decimal128 `json:"salary,omitempty" bson:"salary,omitempty"`
	WeeklyHours   *int                  `json:"weeklyHours,omitempty" bson:"weeklyHours,omitempty"`
	HireDate      *time.Time            `json:"hireDate,omitempty" bson:"hireDate,omitempty"`
	AddressID     int64                 `json:"addressId,omitempty" bson:"addressId,omitempty"`
	CreatedAt     time.Time             `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt" bson:"updatedAt"`
}

var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "workplaceKind", Value: 1}, {Key: "workplaceId", Value: 1}},
		Options: options.Index().SetName("idx_workplaceKind_workplaceId"),
	},
	{
		Keys:    bson.D{{Key: "managerId", Value: 1}},
		Options: options.Index().SetName("idx_managerId"),
	},
	{
		Keys:    bson.D{{Key: "positionId", Value: 1}},
		Options: options.Index().SetName("idx_positionId"),
	},
	{
		Keys:    bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}},
		Options: options.Index().SetName("idx_lastName_firstName"),
	},
}

// ToDomain 無法解析的薪資視為未填
func (e *Employee) ToDomain() organization.Employee {
	kind, err := organization.ParseWorkplaceKind(e.WorkplaceKind)
	if err != nil {
		kind = organization.WorkplaceNone
	}
	out := organization.Employee{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		PositionID:  e.PositionID,
		Workplace:   organization.Workplace{Kind: kind, ID: e.WorkplaceID},
		ManagerID:   e.ManagerID,
		WeeklyHours: e.WeeklyHours,
		HireDate:    e.HireDate,
		AddressID:   e.AddressID,
	}
	if kind == organization.WorkplaceNone {
		out.Workplace = organization.NoWorkplace()
	}
	if e.Salary != nil {
		if d, err := decimal.NewFromString(e.Salary.String()); err == nil {
			out.Salary = decimal.NewNullDecimal(d)
		}
	}
	return out
}

// EmployeeFromDomain 不處理 CreatedAt / UpdatedAt，由 repository 填入
func EmployeeFromDomain(e organization.Employee) (*Employee, error) {
	m := &Employee{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		PositionID:    e.PositionID,
		WorkplaceKind: string(organization.WorkplaceNone),
		ManagerID:     e.ManagerID,
		WeeklyHours:   e.WeeklyHours,
		HireDate:      e.HireDate,
		AddressID:     e.AddressID,
	}
	if !e.Workplace.IsNone() {
		m.WorkplaceKind = string(e.Workplace.Kind)
		m.WorkplaceID = e.Workplace.ID
	}
	if e.Salary.Valid {
		d, err := primitive.ParseDecimal128(e.Salary.Decimal.String())
		if err != nil {
			return nil, err
		}
		m.Salary = &d
	}
	return m, nil
}
