package repository

import (
	"context"
	"fmt"

	"casetrack/application"
	"casetrack/database"
	"casetrack/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	tenantID         int64
	caseRepo         interfaces.CaseRepository
	callLogRepo      interfaces.CallLogRepository
	employeeRepo     interfaces.EmployeeRepository
	teamRepo         interfaces.TeamRepository
	columnConfigRepo interfaces.ColumnConfigRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *unitOfWorkFactory {
	return &unitOfWorkFactory{
		db: db,
	}
}

// CreateForTenant creates a new UnitOfWork scoped to a specific tenant
func (f *unitOfWorkFactory) CreateForTenant(tenantID int64) application.UnitOfWork {
	return &unitOfWork{
		db:       f.db,
		tenantID: tenantID,
	}
}

// CasesForTenant creates a pool-backed case repository; each statement
// commits on its own
func (f *unitOfWorkFactory) CasesForTenant(tenantID int64) interfaces.CaseRepository {
	return NewCaseRepository(f.db, tenantID)
}

// EmployeesForTenant creates a pool-backed employee repository
func (f *unitOfWorkFactory) EmployeesForTenant(tenantID int64) interfaces.EmployeeRepository {
	return NewEmployeeRepository(f.db, tenantID)
}

// TeamsForTenant creates a pool-backed team repository
func (f *unitOfWorkFactory) TeamsForTenant(tenantID int64) interfaces.TeamRepository {
	return NewTeamRepository(f.db, tenantID)
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create tenant-scoped repositories with the transaction
	u.caseRepo = newCaseRepository(tx, u.tenantID)
	u.callLogRepo = newCallLogRepository(tx, u.tenantID)
	u.employeeRepo = newEmployeeRepository(tx, u.tenantID)
	u.teamRepo = newTeamRepository(tx, u.tenantID)
	u.columnConfigRepo = newColumnConfigRepository(tx, u.tenantID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// CaseRepository returns the case repository for this unit of work
func (u *unitOfWork) CaseRepository() interfaces.CaseRepository {
	if u.caseRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.caseRepo
}

// CallLogRepository returns the call log repository for this unit of work
func (u *unitOfWork) CallLogRepository() interfaces.CallLogRepository {
	if u.callLogRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.callLogRepo
}

// EmployeeRepository returns the employee repository for this unit of work
func (u *unitOfWork) EmployeeRepository() interfaces.EmployeeRepository {
	if u.employeeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.employeeRepo
}

// TeamRepository returns the team repository for this unit of work
func (u *unitOfWork) TeamRepository() interfaces.TeamRepository {
	if u.teamRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.teamRepo
}

// ColumnConfigRepository returns the column configuration repository for this unit of work
func (u *unitOfWork) ColumnConfigRepository() interfaces.ColumnConfigRepository {
	if u.columnConfigRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.columnConfigRepo
}
