package repository

import (
	"context"
	"fmt"

	"casetrack/database"
	"casetrack/domain/entities"

	"github.com/shopspring/decimal"
)

// CallLogRepository implements the CallLogRepository interface.
// The table is append-only; entries are never updated or deleted directly.
type CallLogRepository struct {
	q        Queryable
	tenantID int64
}

// NewCallLogRepository creates a new call log repository scoped to a tenant
func NewCallLogRepository(db *database.DB, tenantID int64) *CallLogRepository {
	return &CallLogRepository{q: db.Pool, tenantID: tenantID}
}

// newCallLogRepository creates a new call log repository with a transaction and tenant scope
func newCallLogRepository(tx Queryable, tenantID int64) *CallLogRepository {
	return &CallLogRepository{q: tx, tenantID: tenantID}
}

// Append stores a new immutable entry and fills its ID and CreatedAt
func (r *CallLogRepository) Append(ctx context.Context, entry *entities.CallLogEntry) error {
	query := `
		INSERT INTO call_logs (
			tenant_id, case_id, employee_id, outcome,
			promise_to_pay_at, notes, amount_collected
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric)
		RETURNING id, created_at`

	var amount *string
	if entry.AmountCollected != nil {
		s := entry.AmountCollected.String()
		amount = &s
	}

	err := r.q.QueryRow(ctx, query,
		r.tenantID, entry.CaseID, entry.EmployeeID, entry.Outcome,
		entry.PromiseToPayAt, entry.Notes, amount,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append call log for case %d in tenant %d: %w", entry.CaseID, r.tenantID, err)
	}
	entry.TenantID = r.tenantID
	return nil
}

// ListByCase returns entries for a case, most recent first, enriched with
// the logging employee's display name. The join is a LEFT JOIN so a missing
// employee never fails the read; the service substitutes the sentinel.
func (r *CallLogRepository) ListByCase(ctx context.Context, caseID int64, limit int) ([]*entities.CallLogEntry, error) {
	query := `
		SELECT cl.id, cl.tenant_id, cl.case_id, cl.employee_id,
			COALESCE(e.name, ''),
			cl.outcome, cl.promise_to_pay_at, cl.notes,
			cl.amount_collected::text, cl.created_at
		FROM call_logs cl
		LEFT JOIN employees e ON e.id = cl.employee_id AND e.tenant_id = cl.tenant_id
		WHERE cl.case_id = $1 AND cl.tenant_id = $2
		ORDER BY cl.created_at DESC, cl.id DESC`
	args := []any{caseID, r.tenantID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list call logs for case %d in tenant %d: %w", caseID, r.tenantID, err)
	}
	defer rows.Close()

	var entries []*entities.CallLogEntry
	for rows.Next() {
		var e entities.CallLogEntry
		var amount *string
		err := rows.Scan(
			&e.ID, &e.TenantID, &e.CaseID, &e.EmployeeID,
			&e.EmployeeName,
			&e.Outcome, &e.PromiseToPayAt, &e.Notes,
			&amount, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan call log entry: %w", err)
		}
		if amount != nil {
			d, err := decimal.NewFromString(*amount)
			if err != nil {
				return nil, fmt.Errorf("failed to parse collected amount: %w", err)
			}
			e.AmountCollected = &d
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate call logs: %w", err)
	}
	return entries, nil
}
