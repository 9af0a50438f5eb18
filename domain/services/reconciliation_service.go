package services

import (
	"context"
	"fmt"
	"sort"

	"casetrack/domain"
	"casetrack/domain/entities"
	"casetrack/domain/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ReconciliationService merges bulk-uploaded rows into the case store by
// the (tenant, loan id) natural key, auto-assigning rows whose EMPID value
// matches an active telecaller
type ReconciliationService struct {
	cases     interfaces.CaseRepository
	employees interfaces.EmployeeRepository
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(cases interfaces.CaseRepository, employees interfaces.EmployeeRepository) *ReconciliationService {
	return &ReconciliationService{cases: cases, employees: employees}
}

// ReconcileRows processes mapped rows sequentially and independently. A
// failing row is recorded and skipped; it never aborts the batch. Rows
// already upserted stay committed if the caller abandons the batch.
func (s *ReconciliationService) ReconcileRows(ctx context.Context, rows []entities.MappedRow) (*entities.BulkUploadResult, error) {
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load telecaller roster: %w", err)
	}

	result := &entities.BulkUploadResult{BatchID: uuid.New()}
	for _, row := range rows {
		c, err := s.rowToCase(row)
		if err != nil {
			result.Errors = append(result.Errors, entities.RowError{
				RowIndex: row.Index,
				Message:  err.Error(),
				Row:      row.Fields,
			})
			continue
		}

		assigned := false
		if tc, ok := roster[row.EmployeeID]; ok && row.EmployeeID != "" {
			c.TelecallerID = &tc.ID
			empID := tc.EmployeeID
			c.AssignedEmployeeID = &empID
			c.Status = entities.WorkingStatusAssigned
			assigned = true
		}

		if err := s.cases.Upsert(ctx, c); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"row_index": row.Index,
				"loan_id":   c.LoanID,
			}).Warn("Row upsert failed, continuing batch")
			result.Errors = append(result.Errors, entities.RowError{
				RowIndex: row.Index,
				Message:  err.Error(),
				Row:      row.Fields,
			})
			continue
		}

		result.TotalUploaded++
		if assigned {
			result.AutoAssigned++
		} else {
			result.Unassigned++
		}
	}

	log.WithFields(log.Fields{
		"batch_id":      result.BatchID,
		"uploaded":      result.TotalUploaded,
		"auto_assigned": result.AutoAssigned,
		"unassigned":    result.Unassigned,
		"failed":        len(result.Errors),
	}).Info("Bulk reconciliation finished")

	return result, nil
}

// CreateCase inserts a single case through the same upsert path the bulk
// import uses
func (s *ReconciliationService) CreateCase(ctx context.Context, c *entities.Case) (*entities.Case, error) {
	if c.LoanID == "" {
		return nil, domain.NewValidationError("loan_id", "loan identifier is required")
	}
	if c.Status == "" {
		c.Status = entities.WorkingStatusNew
	}
	if c.CaseStatus == "" {
		c.CaseStatus = entities.CaseStatusPending
	}
	if err := s.cases.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create case %s: %w", c.LoanID, err)
	}
	return c, nil
}

// loadRoster builds the employee-id-string lookup for auto-assignment.
// Duplicate employee IDs within a tenant should not occur; if they do, the
// last loaded row wins and a warning is logged.
func (s *ReconciliationService) loadRoster(ctx context.Context) (map[string]*entities.Employee, error) {
	telecallers, err := s.employees.ListActiveTelecallers(ctx)
	if err != nil {
		return nil, err
	}
	roster := make(map[string]*entities.Employee, len(telecallers))
	for _, tc := range telecallers {
		if _, dup := roster[tc.EmployeeID]; dup {
			log.WithField("employee_id", tc.EmployeeID).Warn("Duplicate employee ID in telecaller roster")
		}
		roster[tc.EmployeeID] = tc
	}
	return roster, nil
}

// rowToCase builds a fresh case from a mapped row. Known internal keys land
// on the case row; everything else goes into the extension map, ordered by
// key so repeated uploads serialize identically.
func (s *ReconciliationService) rowToCase(row entities.MappedRow) (*entities.Case, error) {
	loanID := row.Fields[entities.KeyLoanID]
	if loanID == "" {
		return nil, domain.NewValidationError(entities.KeyLoanID, "row has no loan identifier")
	}

	c := &entities.Case{
		LoanID:         loanID,
		Status:         entities.WorkingStatusNew,
		CaseStatus:     entities.CaseStatusPending,
		TotalCollected: decimal.Zero,
	}
	extensionKeys := make([]string, 0, len(row.Fields))
	for key, value := range row.Fields {
		switch key {
		case entities.KeyLoanID:
			// already taken
		case entities.KeyCustomerName:
			c.CustomerName = value
		case entities.KeyMobile:
			c.Mobile = value
		case entities.KeyAddress:
			c.Address = value
		case entities.KeyLoanAmount:
			c.LoanAmount = value
		case entities.KeyOutstandingAmount:
			c.OutstandingAmount = value
		case entities.KeyEMIAmount:
			c.EMIAmount = value
		case entities.KeyDaysPastDue:
			c.DaysPastDue = value
		default:
			extensionKeys = append(extensionKeys, key)
		}
	}
	sort.Strings(extensionKeys)
	for _, key := range extensionKeys {
		c.Extensions.Set(key, entities.StringValue(row.Fields[key]))
	}
	return c, nil
}
