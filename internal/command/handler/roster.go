package command

import (
	"context"
	"fmt"

	"backoffice/internal/organization"
	"backoffice/internal/service"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	rosterSheet   = "Roster"
	managersSheet = "Managers"
)

var rosterHeader = []any{"ID", "First name", "Last name", "Position", "Category", "Workplace kind", "Workplace", "Manager", "Salary", "Weekly hours", "Hire date", "Address"}

var managersHeader = []any{"ID", "Name", "Workplace", "Subordinates", "Average salary"}

type RosterHandler struct {
	logger *zap.Logger
	loader *service.CatalogLoader
}

func NewRosterHandler(logger *zap.Logger, loader *service.CatalogLoader) *RosterHandler {
	return &RosterHandler{logger: logger, loader: loader}
}

func (handler *RosterHandler) ExportRoster(cmd *cobra.Command, out string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	catalog, err := handler.loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	f, err := BuildRoster(catalog)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	handler.logger.Info("roster exported", zap.String("file", out), zap.Int("employees", len(catalog.Employees())))
	cmd.Printf("exported %d employees to %s\n", len(catalog.Employees()), out)
	return nil
}

// BuildRoster 員工清單一張表，主管與直屬下屬平均薪資一張表
func BuildRoster(catalog *organization.Catalog) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(managersSheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRow(f, rosterSheet, 1, rosterHeader); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetRowStyle(rosterSheet, 1, 1, bold)

	managers := map[int64]organization.Employee{}
	row := 2
	for _, e := range catalog.Employees() {
		position, _ := catalog.Position(e.PositionID)
		workplace, _ := catalog.ResolveWorkplace(e.Workplace)

		managerName := ""
		if manager, ok := catalog.Employee(e.ManagerID); ok && e.HasManager() {
			managerName = manager.FullName()
			managers[manager.ID] = manager
		}
		salary := ""
		if e.Salary.Valid {
			salary = e.Salary.Decimal.StringFixed(2)
		}
		var hours any
		if e.WeeklyHours != nil {
			hours = *e.WeeklyHours
		}
		hireDate := ""
		if e.HireDate != nil {
			hireDate = e.HireDate.Format("2006-01-02")
		}
		address := ""
		if a, ok := catalog.Address(e.AddressID); ok {
			address = fmt.Sprintf("%s, %s %s", a.Street, a.Zip, a.City)
		}

		values := []any{
			e.ID, e.FirstName, e.LastName, position.Name, string(position.Category),
			string(workplace.Kind), workplace.Name, managerName, salary, hours, hireDate, address,
		}
		if err := writeRow(f, rosterSheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	if err := writeRow(f, managersSheet, 1, managersHeader); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetRowStyle(managersSheet, 1, 1, bold)
	row = 2
	for _, e := range catalog.Employees() {
		manager, ok := managers[e.ID]
		if !ok {
			continue
		}
		average := ""
		if avg, ok, err := catalog.AverageSubordinateSalary(manager.ID); err == nil && ok {
			average = avg.StringFixed(2)
		}
		workplace, _ := catalog.ResolveWorkplace(manager.Workplace)
		values := []any{manager.ID, manager.FullName(), workplace.Name, len(catalog.Subordinates(manager.ID)), average}
		if err := writeRow(f, managersSheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	_ = f.SetColWidth(rosterSheet, "B", "L", 18)
	_ = f.SetColWidth(managersSheet, "B", "E", 20)
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
