package interfaces

import (
	"context"

	"casetrack/domain/entities"

	"github.com/shopspring/decimal"
)

// CaseRepository defines data access for cases. Implementations are scoped
// to a single tenant; no query may cross the tenant boundary.
type CaseRepository interface {
	// GetByID retrieves a case by its internal id, or nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Case, error)

	// GetByLoanID retrieves a case by its loan identifier, or nil when absent
	GetByLoanID(ctx context.Context, loanID string) (*entities.Case, error)

	// Upsert inserts or replaces the mapped fields of a case keyed by
	// (tenant, loan id). The running collected total, case_status of a
	// closed case, and history-bearing fields are preserved on update.
	Upsert(ctx context.Context, c *entities.Case) error

	// UpdateAssignment persists telecaller/team assignment and status fields
	UpdateAssignment(ctx context.Context, c *entities.Case) error

	// UpdateStatus persists only the working status fields
	UpdateStatus(ctx context.Context, caseID int64, status entities.WorkingStatus, caseStatus entities.CaseStatus) error

	// UpdateCollectedConditional performs the ledger's compare-and-swap
	// write: the new total is applied only if the stored total still equals
	// prior. Returns false (no error) when another writer got there first.
	UpdateCollectedConditional(ctx context.Context, caseID int64, prior, newTotal decimal.Decimal, close bool) (bool, error)

	// Delete hard-deletes a case. Supervisor action, irreversible.
	Delete(ctx context.Context, id int64) error
}

// CallLogRepository defines append-only access to interaction records
type CallLogRepository interface {
	// Append stores a new immutable entry and fills its ID and CreatedAt
	Append(ctx context.Context, entry *entities.CallLogEntry) error

	// ListByCase returns entries for a case, most recent first, enriched
	// with the logging employee's display name. limit <= 0 returns the
	// full history.
	ListByCase(ctx context.Context, caseID int64, limit int) ([]*entities.CallLogEntry, error)
}

// EmployeeRepository defines lookups against the tenant's staff directory
type EmployeeRepository interface {
	// GetByID retrieves an employee by internal id, or nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Employee, error)

	// GetByEmployeeID retrieves an employee by the human-readable
	// employee-id-string, or nil when absent
	GetByEmployeeID(ctx context.Context, employeeID string) (*entities.Employee, error)

	// ListActiveTelecallers returns the tenant's active telecaller roster
	ListActiveTelecallers(ctx context.Context) ([]*entities.Employee, error)

	// ListByTeam returns the active employees belonging to a team
	ListByTeam(ctx context.Context, teamID int64) ([]*entities.Employee, error)
}

// TeamRepository defines lookups against the tenant's team directory
type TeamRepository interface {
	// GetByID retrieves a team by id, or nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Team, error)

	// List returns all teams for the tenant
	List(ctx context.Context) ([]*entities.Team, error)
}

// ColumnConfigRepository defines access to the tenant's import/export
// column mappings
type ColumnConfigRepository interface {
	// ListByProduct returns the active configuration set for a product,
	// ordered by position
	ListByProduct(ctx context.Context, product string) ([]*entities.ColumnConfiguration, error)

	// Upsert inserts or updates a configuration keyed by
	// (tenant, internal key, product)
	Upsert(ctx context.Context, cfg *entities.ColumnConfiguration) error
}
