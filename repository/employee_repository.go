package repository

import (
	"context"
	"fmt"

	"casetrack/database"
	"casetrack/domain/entities"

	"github.com/jackc/pgx/v5"
)

// EmployeeRepository implements the EmployeeRepository interface
type EmployeeRepository struct {
	q        Queryable
	tenantID int64
}

// NewEmployeeRepository creates a new employee repository scoped to a tenant
func NewEmployeeRepository(db *database.DB, tenantID int64) *EmployeeRepository {
	return &EmployeeRepository{q: db.Pool, tenantID: tenantID}
}

// newEmployeeRepository creates a new employee repository with a transaction and tenant scope
func newEmployeeRepository(tx Queryable, tenantID int64) *EmployeeRepository {
	return &EmployeeRepository{q: tx, tenantID: tenantID}
}

const employeeColumns = `
	id, tenant_id, employee_id, name, mobile, role, team_id, active,
	created_at, updated_at`

// GetByID retrieves an employee by internal id in the current tenant
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*entities.Employee, error) {
	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND tenant_id = $2`

	e, err := scanEmployee(r.q.QueryRow(ctx, query, id, r.tenantID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d in tenant %d: %w", id, r.tenantID, err)
	}
	return e, nil
}

// GetByEmployeeID retrieves an employee by the human-readable
// employee-id-string in the current tenant
func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*entities.Employee, error) {
	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE employee_id = $1 AND tenant_id = $2`

	e, err := scanEmployee(r.q.QueryRow(ctx, query, employeeID, r.tenantID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s in tenant %d: %w", employeeID, r.tenantID, err)
	}
	return e, nil
}

// ListActiveTelecallers returns the tenant's active telecaller roster
func (r *EmployeeRepository) ListActiveTelecallers(ctx context.Context) ([]*entities.Employee, error) {
	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE tenant_id = $1 AND role = $2 AND active
		ORDER BY employee_id`

	return r.list(ctx, query, r.tenantID, entities.RoleTelecaller)
}

// ListByTeam returns the active employees belonging to a team
func (r *EmployeeRepository) ListByTeam(ctx context.Context, teamID int64) ([]*entities.Employee, error) {
	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE tenant_id = $1 AND team_id = $2 AND active
		ORDER BY employee_id`

	return r.list(ctx, query, r.tenantID, teamID)
}

func (r *EmployeeRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Employee, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees in tenant %d: %w", r.tenantID, err)
	}
	defer rows.Close()

	var employees []*entities.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID, &e.TenantID, &e.EmployeeID, &e.Name, &e.Mobile, &e.Role,
		&e.TeamID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
