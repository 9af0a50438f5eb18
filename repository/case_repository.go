package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"casetrack/database"
	"casetrack/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CaseRepository implements the CaseRepository interface
type CaseRepository struct {
	q        Queryable
	tenantID int64
}

// NewCaseRepository creates a new case repository scoped to a tenant
func NewCaseRepository(db *database.DB, tenantID int64) *CaseRepository {
	return &CaseRepository{q: db.Pool, tenantID: tenantID}
}

// newCaseRepository creates a new case repository with a transaction and tenant scope
func newCaseRepository(tx Queryable, tenantID int64) *CaseRepository {
	return &CaseRepository{q: tx, tenantID: tenantID}
}

const caseColumns = `
	id, tenant_id, loan_id, customer_name, mobile, address,
	loan_amount, outstanding_amount, emi_amount, days_past_due,
	extensions, team_id, telecaller_id, assigned_employee_id,
	status, case_status, total_collected_amount::text,
	created_at, updated_at`

// GetByID retrieves a case by its internal id in the current tenant
func (r *CaseRepository) GetByID(ctx context.Context, id int64) (*entities.Case, error) {
	query := `SELECT` + caseColumns + `
		FROM cases
		WHERE id = $1 AND tenant_id = $2`

	c, err := scanCase(r.q.QueryRow(ctx, query, id, r.tenantID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case %d in tenant %d: %w", id, r.tenantID, err)
	}
	return c, nil
}

// GetByLoanID retrieves a case by its loan identifier in the current tenant
func (r *CaseRepository) GetByLoanID(ctx context.Context, loanID string) (*entities.Case, error) {
	query := `SELECT` + caseColumns + `
		FROM cases
		WHERE loan_id = $1 AND tenant_id = $2`

	c, err := scanCase(r.q.QueryRow(ctx, query, loanID, r.tenantID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case %s in tenant %d: %w", loanID, r.tenantID, err)
	}
	return c, nil
}

// Upsert inserts or replaces the mapped fields of a case keyed by
// (tenant, loan id). The running collected total is never touched; a closed
// case keeps its assignment and lifecycle fields; a row without a team
// keeps the team it already had.
func (r *CaseRepository) Upsert(ctx context.Context, c *entities.Case) error {
	extensions, err := json.Marshal(c.Extensions)
	if err != nil {
		return fmt.Errorf("failed to marshal extensions for case %s: %w", c.LoanID, err)
	}

	query := `
		INSERT INTO cases (
			tenant_id, loan_id, customer_name, mobile, address,
			loan_amount, outstanding_amount, emi_amount, days_past_due,
			extensions, team_id, telecaller_id, assigned_employee_id,
			status, case_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (tenant_id, loan_id) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			mobile = EXCLUDED.mobile,
			address = EXCLUDED.address,
			loan_amount = EXCLUDED.loan_amount,
			outstanding_amount = EXCLUDED.outstanding_amount,
			emi_amount = EXCLUDED.emi_amount,
			days_past_due = EXCLUDED.days_past_due,
			extensions = EXCLUDED.extensions,
			team_id = COALESCE(EXCLUDED.team_id, cases.team_id),
			telecaller_id = CASE WHEN cases.case_status = 'closed' THEN cases.telecaller_id ELSE EXCLUDED.telecaller_id END,
			assigned_employee_id = CASE WHEN cases.case_status = 'closed' THEN cases.assigned_employee_id ELSE EXCLUDED.assigned_employee_id END,
			status = CASE WHEN cases.case_status = 'closed' THEN cases.status ELSE EXCLUDED.status END,
			updated_at = NOW()
		RETURNING id, team_id, telecaller_id, assigned_employee_id, status,
			case_status, total_collected_amount::text, created_at, updated_at`

	var total string
	err = r.q.QueryRow(ctx, query,
		r.tenantID, c.LoanID, c.CustomerName, c.Mobile, c.Address,
		c.LoanAmount, c.OutstandingAmount, c.EMIAmount, c.DaysPastDue,
		extensions, c.TeamID, c.TelecallerID, c.AssignedEmployeeID,
		c.Status, c.CaseStatus,
	).Scan(
		&c.ID, &c.TeamID, &c.TelecallerID, &c.AssignedEmployeeID, &c.Status,
		&c.CaseStatus, &total, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert case %s in tenant %d: %w", c.LoanID, r.tenantID, err)
	}
	c.TenantID = r.tenantID
	c.TotalCollected, err = decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("failed to parse collected total for case %s: %w", c.LoanID, err)
	}
	return nil
}

// UpdateAssignment persists telecaller/team assignment and status fields
func (r *CaseRepository) UpdateAssignment(ctx context.Context, c *entities.Case) error {
	query := `
		UPDATE cases
		SET telecaller_id = $1, assigned_employee_id = $2, team_id = $3,
			status = $4, updated_at = NOW()
		WHERE id = $5 AND tenant_id = $6`

	result, err := r.q.Exec(ctx, query,
		c.TelecallerID, c.AssignedEmployeeID, c.TeamID, c.Status, c.ID, r.tenantID)
	if err != nil {
		return fmt.Errorf("failed to update assignment for case %d in tenant %d: %w", c.ID, r.tenantID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("case %d not found in tenant %d", c.ID, r.tenantID)
	}
	return nil
}

// UpdateStatus persists only the working status fields
func (r *CaseRepository) UpdateStatus(ctx context.Context, caseID int64, status entities.WorkingStatus, caseStatus entities.CaseStatus) error {
	query := `
		UPDATE cases
		SET status = $1, case_status = $2, updated_at = NOW()
		WHERE id = $3 AND tenant_id = $4`

	result, err := r.q.Exec(ctx, query, status, caseStatus, caseID, r.tenantID)
	if err != nil {
		return fmt.Errorf("failed to update status for case %d in tenant %d: %w", caseID, r.tenantID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("case %d not found in tenant %d", caseID, r.tenantID)
	}
	return nil
}

// UpdateCollectedConditional applies the ledger's compare-and-swap write:
// the new total lands only if the stored total still equals prior. Returns
// false when a concurrent payment got there first.
func (r *CaseRepository) UpdateCollectedConditional(ctx context.Context, caseID int64, prior, newTotal decimal.Decimal, close bool) (bool, error) {
	query := `
		UPDATE cases
		SET total_collected_amount = $1::numeric,
			status = CASE WHEN $2 THEN 'closed' ELSE status END,
			case_status = CASE WHEN $2 THEN 'closed' ELSE case_status END,
			updated_at = NOW()
		WHERE id = $3 AND tenant_id = $4 AND total_collected_amount = $5::numeric`

	result, err := r.q.Exec(ctx, query, newTotal.String(), close, caseID, r.tenantID, prior.String())
	if err != nil {
		return false, fmt.Errorf("failed to apply collected total for case %d in tenant %d: %w", caseID, r.tenantID, err)
	}
	return result.RowsAffected() > 0, nil
}

// Delete hard-deletes a case and its call logs (cascade)
func (r *CaseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM cases WHERE id = $1 AND tenant_id = $2`, id, r.tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete case %d in tenant %d: %w", id, r.tenantID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("case %d not found in tenant %d", id, r.tenantID)
	}
	return nil
}

func scanCase(row pgx.Row) (*entities.Case, error) {
	var c entities.Case
	var extensions []byte
	var total string
	err := row.Scan(
		&c.ID, &c.TenantID, &c.LoanID, &c.CustomerName, &c.Mobile, &c.Address,
		&c.LoanAmount, &c.OutstandingAmount, &c.EMIAmount, &c.DaysPastDue,
		&extensions, &c.TeamID, &c.TelecallerID, &c.AssignedEmployeeID,
		&c.Status, &c.CaseStatus, &total,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(extensions) > 0 {
		if err := json.Unmarshal(extensions, &c.Extensions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extensions: %w", err)
		}
	}
	c.TotalCollected, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("failed to parse collected total: %w", err)
	}
	return &c, nil
}
