package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yigit/librarium/internal/db"
)

// ConsoleRepository runs the statements built by the admin console
type ConsoleRepository struct {
	db db.Querier
}

// NewConsoleRepository creates a new ConsoleRepository
func NewConsoleRepository(db db.Querier) *ConsoleRepository {
	return &ConsoleRepository{db: db}
}

// QueryRows returns every row keyed by column name
func (r *ConsoleRepository) QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying console rows: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("error scanning console rows: %w", err)
	}
	if result == nil {
		result = []map[string]any{}
	}
	return result, nil
}

// QueryCount runs a single-value COUNT query
func (r *ConsoleRepository) QueryCount(ctx context.Context, sql string, args ...any) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting console rows: %w", err)
	}
	return count, nil
}

// Exec runs a bulk statement and reports the affected row count
func (r *ConsoleRepository) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error running console action: %w", translate(err, nil))
	}
	return tag.RowsAffected(), nil
}
