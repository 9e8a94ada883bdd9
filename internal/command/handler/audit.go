package command

import (
	"context"
	"fmt"

	"backoffice/internal/organization"
	"backoffice/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type AuditHandler struct {
	logger *zap.Logger
	loader *service.CatalogLoader
}

func NewAuditHandler(logger *zap.Logger, loader *service.CatalogLoader) *AuditHandler {
	return &AuditHandler{logger: logger, loader: loader}
}

// AuditFinding 一位已儲存員工違反的指派規則
type AuditFinding struct {
	Employee   organization.Employee
	Violations organization.Violations
}

// Audit 以目前的目錄重新檢查所有員工
func Audit(catalog *organization.Catalog) []AuditFinding {
	var findings []AuditFinding
	for _, e := range catalog.Employees() {
		if vs := organization.Validate(e, catalog); !vs.Empty() {
			findings = append(findings, AuditFinding{Employee: e, Violations: vs})
		}
	}
	return findings
}

// AuditAssignments 資料庫層不保證參照完整性，這裡找出已經不一致的資料
func (handler *AuditHandler) AuditAssignments(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	catalog, err := handler.loader.Snapshot(ctx)
	if err != nil {
		return err
	}

	findings := Audit(catalog)
	for _, f := range findings {
		for _, v := range f.Violations {
			cmd.Printf("employee %d %s: %s\n", f.Employee.ID, f.Employee.FullName(), v.String())
		}
	}
	handler.logger.Info("audit assignments finished",
		zap.Int("employees", len(catalog.Employees())),
		zap.Int("invalid", len(findings)),
	)
	cmd.Printf("%d of %d employees have invalid assignments\n", len(findings), len(catalog.Employees()))
	if len(findings) > 0 {
		return fmt.Errorf("%d invalid assignment(s)", len(findings))
	}
	return nil
}
