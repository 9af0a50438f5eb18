package repository

import (
	"context"
	"fmt"

	"casetrack/database"
	"casetrack/domain/entities"
)

// ColumnConfigRepository implements the ColumnConfigRepository interface
type ColumnConfigRepository struct {
	q        Queryable
	tenantID int64
}

// NewColumnConfigRepository creates a new column configuration repository scoped to a tenant
func NewColumnConfigRepository(db *database.DB, tenantID int64) *ColumnConfigRepository {
	return &ColumnConfigRepository{q: db.Pool, tenantID: tenantID}
}

// newColumnConfigRepository creates a new column configuration repository with a transaction and tenant scope
func newColumnConfigRepository(tx Queryable, tenantID int64) *ColumnConfigRepository {
	return &ColumnConfigRepository{q: tx, tenantID: tenantID}
}

// ListByProduct returns the tenant's column configurations for a product,
// in display order
func (r *ColumnConfigRepository) ListByProduct(ctx context.Context, product string) ([]*entities.ColumnConfiguration, error) {
	query := `
		SELECT id, tenant_id, internal_key, display_name, data_type, product,
			position, created_at, updated_at
		FROM column_configurations
		WHERE tenant_id = $1 AND product = $2
		ORDER BY position, internal_key`

	rows, err := r.q.Query(ctx, query, r.tenantID, product)
	if err != nil {
		return nil, fmt.Errorf("failed to list column configurations in tenant %d: %w", r.tenantID, err)
	}
	defer rows.Close()

	var configs []*entities.ColumnConfiguration
	for rows.Next() {
		var cfg entities.ColumnConfiguration
		err := rows.Scan(
			&cfg.ID, &cfg.TenantID, &cfg.InternalKey, &cfg.DisplayName,
			&cfg.DataType, &cfg.Product, &cfg.Position,
			&cfg.CreatedAt, &cfg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column configuration: %w", err)
		}
		configs = append(configs, &cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate column configurations: %w", err)
	}
	return configs, nil
}

// Upsert inserts or updates a column configuration keyed by
// (tenant, internal key, product)
func (r *ColumnConfigRepository) Upsert(ctx context.Context, cfg *entities.ColumnConfiguration) error {
	query := `
		INSERT INTO column_configurations (
			tenant_id, internal_key, display_name, data_type, product, position
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, internal_key, product) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			data_type = EXCLUDED.data_type,
			position = EXCLUDED.position,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		r.tenantID, cfg.InternalKey, cfg.DisplayName, cfg.DataType,
		cfg.Product, cfg.Position,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert column configuration %s in tenant %d: %w", cfg.InternalKey, r.tenantID, err)
	}
	cfg.TenantID = r.tenantID
	return nil
}
