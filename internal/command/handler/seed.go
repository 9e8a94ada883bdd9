package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"backoffice/internal/database/mongodb/model"
	mongoRepo "backoffice/internal/database/mongodb/repository"
	"backoffice/internal/organization"
	"backoffice/internal/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SeedFile 參考資料與員工的 YAML 匯入格式
type SeedFile struct {
	Positions    []SeedPosition  `yaml:"positions"`
	Supermarkets []SeedWorkplace `yaml:"supermarkets"`
	Warehouses   []SeedWorkplace `yaml:"warehouses"`
	Addresses    []SeedAddress   `yaml:"addresses"`
	Employees    []SeedEmployee  `yaml:"employees"`
}

type SeedPosition struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type SeedWorkplace struct {
	ID        int64  `yaml:"id"`
	Name      string `yaml:"name"`
	AddressID int64  `yaml:"addressId"`
}

type SeedAddress struct {
	ID     int64  `yaml:"id"`
	Street string `yaml:"street"`
	City   string `yaml:"city"`
	Zip    string `yaml:"zip"`
}

type SeedEmployee struct {
	ID          int64  `yaml:"id"`
	FirstName   string `yaml:"firstName"`
	LastName    string `yaml:"lastName"`
	PositionID  int64  `yaml:"positionId"`
	Workplace   string `yaml:"workplace"` // supermarket / warehouse / none
	WorkplaceID int64  `yaml:"workplaceId"`
	ManagerID   int64  `yaml:"managerId"`
	Salary      string `yaml:"salary"`
	WeeklyHours *int   `yaml:"weeklyHours"`
	HireDate    string `yaml:"hireDate"` // 2006-01-02
	AddressID   int64  `yaml:"addressId"`
}

func (e SeedEmployee) toDomain() (organization.Employee, error) {
	kind, err := organization.ParseWorkplaceKind(e.Workplace)
	if err != nil {
		return organization.Employee{}, fmt.Errorf("employee %d: %w", e.ID, err)
	}
	out := organization.Employee{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		PositionID:  e.PositionID,
		Workplace:   organization.Workplace{Kind: kind, ID: e.WorkplaceID},
		ManagerID:   e.ManagerID,
		WeeklyHours: e.WeeklyHours,
		AddressID:   e.AddressID,
	}
	if kind == organization.WorkplaceNone {
		out.Workplace = organization.NoWorkplace()
	}
	if e.Salary != "" {
		d, err := decimal.NewFromString(e.Salary)
		if err != nil {
			return organization.Employee{}, fmt.Errorf("employee %d salary: %w", e.ID, err)
		}
		out.Salary = decimal.NewNullDecimal(d)
	}
	if e.HireDate != "" {
		t, err := time.Parse(time.DateOnly, e.HireDate)
		if err != nil {
			return organization.Employee{}, fmt.Errorf("employee %d hireDate: %w", e.ID, err)
		}
		out.HireDate = &t
	}
	return out, nil
}

// Catalog 以匯入檔內容組出完整目錄，用來在寫入前檢查員工資料
func (f *SeedFile) Catalog() (*organization.Catalog, []organization.Employee, error) {
	catalog := organization.NewCatalog()

	positions := make([]organization.Position, 0, len(f.Positions))
	for _, p := range f.Positions {
		positions = append(positions, organization.NewPosition(p.ID, p.Name, organization.Category(p.Category)))
	}
	supermarkets := make([]organization.Workplace, 0, len(f.Supermarkets))
	for _, w := range f.Supermarkets {
		supermarkets = append(supermarkets, organization.Supermarket(w.ID, w.Name))
	}
	warehouses := make([]organization.Workplace, 0, len(f.Warehouses))
	for _, w := range f.Warehouses {
		warehouses = append(warehouses, organization.Warehouse(w.ID, w.Name))
	}
	addresses := make([]organization.Address, 0, len(f.Addresses))
	for _, a := range f.Addresses {
		addresses = append(addresses, organization.Address{ID: a.ID, Street: a.Street, City: a.City, Zip: a.Zip})
	}
	employees := make([]organization.Employee, 0, len(f.Employees))
	for _, e := range f.Employees {
		if e.ID <= 0 {
			return nil, nil, fmt.Errorf("employee %q %q: id is required", e.FirstName, e.LastName)
		}
		emp, err := e.toDomain()
		if err != nil {
			return nil, nil, err
		}
		employees = append(employees, emp)
	}

	catalog.SetPositions(positions)
	catalog.SetSupermarkets(supermarkets)
	catalog.SetWarehouses(warehouses)
	catalog.SetAddresses(addresses)
	catalog.SetEmployees(employees)
	return catalog, employees, nil
}

// LoadSeedFile 讀取 YAML 匯入檔
func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file SeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &file, nil
}

type SeedHandler struct {
	logger        *zap.Logger
	mongodb       *mongoRepo.MongoDBRepository
	catalogSource *service.MongoCatalogSource
}

func NewSeedHandler(
	logger *zap.Logger,
	mongodb *mongoRepo.MongoDBRepository,
	catalogSource *service.MongoCatalogSource,
) *SeedHandler {
	return &SeedHandler{
		logger:        logger,
		mongodb:       mongodb,
		catalogSource: catalogSource,
	}
}

// Seed 匯入前先以指派規則檢查所有員工，有違規就整批不寫入
func (handler *SeedHandler) Seed(cmd *cobra.Command, path string) error {
	file, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	catalog, employees, err := file.Catalog()
	if err != nil {
		return err
	}
	invalid := 0
	for _, e := range employees {
		for _, v := range organization.Validate(e, catalog) {
			cmd.Printf("employee %d %s: %s\n", e.ID, e.FullName(), v.String())
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("seed rejected: %d violation(s)", invalid)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now()

	positions := make([]*model.Position, 0, len(file.Positions))
	for _, p := range file.Positions {
		positions = append(positions, &model.Position{ID: p.ID, Name: p.Name, Category: p.Category, CreatedAt: now, UpdatedAt: now})
	}
	if _, err := handler.mongodb.Positions.UpsertMany(ctx, positions); err != nil {
		return fmt.Errorf("seed positions: %w", err)
	}
	if _, err := handler.mongodb.Supermarkets.UpsertMany(ctx, toWorkplaceModels(file.Supermarkets, now)); err != nil {
		return fmt.Errorf("seed supermarkets: %w", err)
	}
	if _, err := handler.mongodb.Warehouses.UpsertMany(ctx, toWorkplaceModels(file.Warehouses, now)); err != nil {
		return fmt.Errorf("seed warehouses: %w", err)
	}
	addresses := make([]*model.Address, 0, len(file.Addresses))
	for _, a := range file.Addresses {
		addresses = append(addresses, &model.Address{ID: a.ID, Street: a.Street, City: a.City, Zip: a.Zip, CreatedAt: now, UpdatedAt: now})
	}
	if _, err := handler.mongodb.Addresses.UpsertMany(ctx, addresses); err != nil {
		return fmt.Errorf("seed addresses: %w", err)
	}
	docs := make([]*model.Employee, 0, len(employees))
	for _, e := range employees {
		doc, err := model.EmployeeFromDomain(e)
		if err != nil {
			return fmt.Errorf("employee %d: %w", e.ID, err)
		}
		doc.CreatedAt, doc.UpdatedAt = now, now
		docs = append(docs, doc)
	}
	if _, err := handler.mongodb.Employees.UpsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}

	if err := handler.catalogSource.Invalidate(ctx, organization.Collections()...); err != nil {
		handler.logger.Warn("invalidate catalog cache after seed", zap.Error(err))
	}
	handler.logger.Info("seed finished",
		zap.Int("positions", len(positions)),
		zap.Int("supermarkets", len(file.Supermarkets)),
		zap.Int("warehouses", len(file.Warehouses)),
		zap.Int("addresses", len(addresses)),
		zap.Int("employees", len(docs)),
	)
	cmd.Printf("seeded %d positions, %d supermarkets, %d warehouses, %d addresses, %d employees\n",
		len(positions), len(file.Supermarkets), len(file.Warehouses), len(addresses), len(docs))
	return nil
}

func toWorkplaceModels(in []SeedWorkplace, now time.Time) []*model.Workplace {
	out := make([]*model.Workplace, 0, len(in))
	for _, w := range in {
		out = append(out, &model.Workplace{ID: w.ID, Name: w.Name, AddressID: w.AddressID, CreatedAt: now, UpdatedAt: now})
	}
	return out
}
