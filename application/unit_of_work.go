package application

import (
	"context"

	"casetrack/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	CaseRepository() interfaces.CaseRepository
	CallLogRepository() interfaces.CallLogRepository
	EmployeeRepository() interfaces.EmployeeRepository
	TeamRepository() interfaces.TeamRepository
	ColumnConfigRepository() interfaces.ColumnConfigRepository
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForTenant creates a new UnitOfWork instance scoped to a specific tenant
	CreateForTenant(tenantID int64) UnitOfWork
}

// RepositoryFactory additionally creates pool-backed repositories whose
// statements commit independently. Batch flows use these instead of a unit
// of work: one row's storage failure must not poison or roll back the rest
// of the batch, and partial progress stays committed if the caller abandons
// the batch mid-run.
type RepositoryFactory interface {
	UnitOfWorkFactory

	// CasesForTenant creates a case repository outside any transaction
	CasesForTenant(tenantID int64) interfaces.CaseRepository

	// EmployeesForTenant creates an employee repository outside any transaction
	EmployeesForTenant(tenantID int64) interfaces.EmployeeRepository

	// TeamsForTenant creates a team repository outside any transaction
	TeamsForTenant(tenantID int64) interfaces.TeamRepository
}
