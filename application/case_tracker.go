package application

import (
	"context"
	"fmt"
	"io"

	"casetrack/domain/entities"
	"casetrack/domain/services"
	"casetrack/importer"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// CaseTracker is the application facade over the case lifecycle. Single-case
// operations run inside their own tenant-scoped unit of work; the bulk
// operations run on pool-backed repositories so each row commits on its own.
// Callers never see repositories or transactions.
type CaseTracker struct {
	factory RepositoryFactory
	mapper  *services.ColumnMapper
}

// NewCaseTracker creates the application facade
func NewCaseTracker(factory RepositoryFactory) *CaseTracker {
	return &CaseTracker{
		factory: factory,
		mapper:  services.NewColumnMapper(),
	}
}

// ParseImportFile reads an .xlsx upload, resolves its header row against the
// tenant's column configuration for the product, and returns the mapped rows
// ready for reconciliation. Nothing is written.
func (t *CaseTracker) ParseImportFile(ctx context.Context, tenantID int64, r io.Reader, product string) ([]entities.MappedRow, error) {
	sheet, err := importer.ReadWorkbook(r)
	if err != nil {
		return nil, err
	}

	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	configs, err := uow.ColumnConfigRepository().ListByProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	mapping, err := t.mapper.ResolveHeaders(configs, sheet.Headers)
	if err != nil {
		return nil, err
	}
	if len(mapping.Ignored) > 0 {
		log.WithFields(log.Fields{
			"tenant_id": tenantID,
			"product":   product,
			"ignored":   mapping.Ignored,
		}).Info("Upload headers without a configured column were ignored")
	}

	rows := t.mapper.MapRows(mapping, sheet.Rows)

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rows, nil
}

// ReconcileBulkUpload runs the bulk reconciliation of mapped rows: upsert by
// loan id, auto-assign by EMPID against the active telecaller roster, and
// collect per-row errors without failing the batch. The batch deliberately
// does not run in a transaction: each row's upsert commits on its own, so a
// row the store rejects cannot poison or roll back the rows before it, and
// rows already written stay committed if the batch is abandoned midway.
func (t *CaseTracker) ReconcileBulkUpload(ctx context.Context, tenantID int64, rows []entities.MappedRow) (*entities.BulkUploadResult, error) {
	svc := services.NewReconciliationService(t.factory.CasesForTenant(tenantID), t.factory.EmployeesForTenant(tenantID))
	return svc.ReconcileRows(ctx, rows)
}

// CreateCase inserts or refreshes a single case through the same upsert path
// as bulk reconciliation
func (t *CaseTracker) CreateCase(ctx context.Context, tenantID int64, c *entities.Case) (*entities.Case, error) {
	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	svc := services.NewReconciliationService(uow.CaseRepository(), uow.EmployeeRepository())
	created, err := svc.CreateCase(ctx, c)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// AssignCase assigns an open case to an active telecaller
func (t *CaseTracker) AssignCase(ctx context.Context, tenantID, caseID, telecallerID int64) (*entities.Case, error) {
	return t.withAssignment(ctx, tenantID, func(ctx context.Context, svc *services.AssignmentService) (*entities.Case, error) {
		return svc.Assign(ctx, caseID, telecallerID)
	})
}

// UnassignCase returns an open case to the unassigned pool
func (t *CaseTracker) UnassignCase(ctx context.Context, tenantID, caseID int64) (*entities.Case, error) {
	return t.withAssignment(ctx, tenantID, func(ctx context.Context, svc *services.AssignmentService) (*entities.Case, error) {
		return svc.Unassign(ctx, caseID)
	})
}

// ChangeCaseTeam moves an open case to another team without touching its
// working status
func (t *CaseTracker) ChangeCaseTeam(ctx context.Context, tenantID, caseID, teamID int64) (*entities.Case, error) {
	return t.withAssignment(ctx, tenantID, func(ctx context.Context, svc *services.AssignmentService) (*entities.Case, error) {
		return svc.ChangeTeam(ctx, caseID, teamID)
	})
}

// BulkOperate applies one assignment operation across many cases with
// per-case error isolation. Like reconciliation it runs outside any
// transaction: each case's update commits on its own.
func (t *CaseTracker) BulkOperate(ctx context.Context, tenantID int64, caseIDs []int64, req services.BulkOperateRequest) (*entities.BulkOperationResult, error) {
	svc := services.NewAssignmentService(t.factory.CasesForTenant(tenantID), t.factory.EmployeesForTenant(tenantID), t.factory.TeamsForTenant(tenantID))
	return svc.BulkOperate(ctx, caseIDs, req)
}

// DeleteCase permanently removes a case and its call history
func (t *CaseTracker) DeleteCase(ctx context.Context, tenantID, caseID int64) error {
	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	svc := services.NewAssignmentService(uow.CaseRepository(), uow.EmployeeRepository(), uow.TeamRepository())
	if err := svc.DeleteCase(ctx, caseID); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LogCall appends an immutable interaction entry and advances the case's
// working status when the contact warrants it
func (t *CaseTracker) LogCall(ctx context.Context, tenantID int64, req services.LogCallRequest) (*entities.CallLogEntry, error) {
	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	svc := services.NewCallLogService(uow.CaseRepository(), uow.CallLogRepository())
	entry, err := svc.LogCall(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry, nil
}

// GetCallHistory returns a case's interaction history, most recent first.
// A limit of zero or less returns the full history.
func (t *CaseTracker) GetCallHistory(ctx context.Context, tenantID, caseID int64, limit int) ([]*entities.CallLogEntry, error) {
	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	svc := services.NewCallLogService(uow.CaseRepository(), uow.CallLogRepository())
	entries, err := svc.GetHistory(ctx, caseID, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entries, nil
}

// RecordPayment appends a payment entry, accrues the case's collected total,
// and closes the case when the outstanding amount is settled
func (t *CaseTracker) RecordPayment(ctx context.Context, tenantID, caseID, employeeID int64, amount decimal.Decimal, notes string) (*entities.Case, error) {
	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	svc := services.NewPaymentService(uow.CaseRepository(), uow.CallLogRepository())
	c, err := svc.RecordPayment(ctx, caseID, employeeID, amount, notes)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return c, nil
}

// ExportTemplate writes an empty .xlsx template whose header row carries the
// tenant's configured display labels for a product
func (t *CaseTracker) ExportTemplate(ctx context.Context, tenantID int64, product string, w io.Writer) error {
	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	configs, err := uow.ColumnConfigRepository().ListByProduct(ctx, product)
	if err != nil {
		return err
	}

	headers := t.mapper.ExportHeaders(configs)

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return importer.WriteWorkbook(w, "Cases", headers, nil)
}

func (t *CaseTracker) withAssignment(ctx context.Context, tenantID int64, fn func(context.Context, *services.AssignmentService) (*entities.Case, error)) (*entities.Case, error) {
	uow := t.factory.CreateForTenant(tenantID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	svc := services.NewAssignmentService(uow.CaseRepository(), uow.EmployeeRepository(), uow.TeamRepository())
	c, err := fn(ctx, svc)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return c, nil
}
