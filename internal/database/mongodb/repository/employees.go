package repository

import (
	"context"
	"time"

	"backoffice/internal/core"
	client "backoffice/internal/database/client"
	"backoffice/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployeeRepository struct {
	collection *mongo.Collection
	counters   *CounterRepository
}

func NewEmployeeRepository(mongoClient *client.MongoClient, counters *CounterRepository) *EmployeeRepository {
	repository := &EmployeeRepository{
		collection: mongoClient.Collection(core.MongoCollectionEmployees),
		counters:   counters,
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *EmployeeRepository) ensureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.EmployeeIndexes)
	return err
}

// Create ID 為 0 時由 counters 配發
func (repository *EmployeeRepository) Create(contextValue context.Context, employee *model.Employee) (_ *model.Employee, returnedError error) {
	if employee.ID == 0 {
		id, err := repository.counters.NextID(contextValue, core.MongoCollectionEmployees)
		if err != nil {
			return nil, err
		}
		employee.ID = id
	}
	nowUTC := time.Now().UTC()
	employee.CreatedAt = nowUTC
	employee.UpdatedAt = nowUTC

	if _, returnedError = repository.collection.InsertOne(contextValue, employee); returnedError != nil {
		return nil, returnedError
	}
	return employee, nil
}

func (repository *EmployeeRepository) GetByID(contextValue context.Context, employeeID int64) (_ *model.Employee, returnedError error) {
	var employee model.Employee
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": employeeID}).Decode(&employee); returnedError != nil {
		return nil, returnedError
	}
	return &employee, nil
}

func (repository *EmployeeRepository) List(contextValue context.Context, filter bson.M) ([]*model.Employee, error) {
	return findAll[model.Employee](contextValue, repository.collection, filter)
}

// Replace 覆寫所有可編輯欄位；空值欄位以 $unset 移除，保留 createdAt
func (repository *EmployeeRepository) Replace(contextValue context.Context, employee *model.Employee) (matchedCount int64, returnedError error) {
	set := bson.M{
		"firstName":     employee.FirstName,
		"lastName":      employee.LastName,
		"positionId":    employee.PositionID,
		"workplaceKind": employee.WorkplaceKind,
	}
	unset := bson.M{}
	optional := func(key string, present bool, value any) {
		if present {
			set[key] = value
		} else {
			unset[key] = ""
		}
	}
	optional("workplaceId", employee.WorkplaceID != 0, employee.WorkplaceID)
	optional("managerId", employee.ManagerID != 0, employee.ManagerID)
	optional("salary", employee.Salary != nil, employee.Salary)
	optional("weeklyHours", employee.WeeklyHours != nil, employee.WeeklyHours)
	optional("hireDate", employee.HireDate != nil, employee.HireDate)
	optional("addressId", employee.AddressID != 0, employee.AddressID)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": employee.ID}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

func (repository *EmployeeRepository) DeleteByID(contextValue context.Context, employeeID int64) (deletedCount int64, returnedError error) {
	result, err := repository.collection.DeleteOne(contextValue, bson.M{"_id": employeeID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// SetSalaries 一次更新多位員工的薪資，回傳實際改動筆數
func (repository *EmployeeRepository) SetSalaries(contextValue context.Context, salaries map[int64]primitive.Decimal128) (modifiedCount int64, returnedError error) {
	if len(salaries) == 0 {
		return 0, nil
	}
	writes := make([]mongo.WriteModel, 0, len(salaries))
	for id, salary := range salaries {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(withUpdatedAt(bson.M{"$set": bson.M{"salary": salary}})))
	}
	result, err := repository.collection.BulkWrite(contextValue, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// UpsertMany 匯入既有 id 並推進序號
func (repository *EmployeeRepository) UpsertMany(contextValue context.Context, employees []*model.Employee) (int64, error) {
	nowUTC := time.Now().UTC()
	ids := make([]int64, len(employees))
	docs := make([]any, len(employees))
	var maxID int64
	for i, e := range employees {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = nowUTC
		}
		e.UpdatedAt = nowUTC
		ids[i], docs[i] = e.ID, e
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	count, err := upsertByID(contextValue, repository.collection, ids, docs)
	if err != nil {
		return count, err
	}
	return count, repository.counters.Reserve(contextValue, core.MongoCollectionEmployees, maxID)
}
