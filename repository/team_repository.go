package repository

import (
	"context"
	"fmt"

	"casetrack/database"
	"casetrack/domain/entities"

	"github.com/jackc/pgx/v5"
)

// TeamRepository implements the TeamRepository interface
type TeamRepository struct {
	q        Queryable
	tenantID int64
}

// NewTeamRepository creates a new team repository scoped to a tenant
func NewTeamRepository(db *database.DB, tenantID int64) *TeamRepository {
	return &TeamRepository{q: db.Pool, tenantID: tenantID}
}

// newTeamRepository creates a new team repository with a transaction and tenant scope
func newTeamRepository(tx Queryable, tenantID int64) *TeamRepository {
	return &TeamRepository{q: tx, tenantID: tenantID}
}

// GetByID retrieves a team by id in the current tenant
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	query := `
		SELECT id, tenant_id, name, incharge_id, created_at, updated_at
		FROM teams
		WHERE id = $1 AND tenant_id = $2`

	var t entities.Team
	err := r.q.QueryRow(ctx, query, id, r.tenantID).Scan(
		&t.ID, &t.TenantID, &t.Name, &t.InchargeID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %d in tenant %d: %w", id, r.tenantID, err)
	}
	return &t, nil
}

// List returns all teams in the current tenant
func (r *TeamRepository) List(ctx context.Context) ([]*entities.Team, error) {
	query := `
		SELECT id, tenant_id, name, incharge_id, created_at, updated_at
		FROM teams
		WHERE tenant_id = $1
		ORDER BY name`

	rows, err := r.q.Query(ctx, query, r.tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams in tenant %d: %w", r.tenantID, err)
	}
	defer rows.Close()

	var teams []*entities.Team
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Name, &t.InchargeID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}
