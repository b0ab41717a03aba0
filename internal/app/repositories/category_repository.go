package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db db.Querier
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db db.Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query, args, err := psql.Insert("categories").Columns("name").Values(c.Name).Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("error building category insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("error creating category: %w", translate(err, categoryConstraints))
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query, args, err := psql.Select("id", "name").From("categories").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Category
	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name); err != nil {
		return nil, notFound(err, "category %d not found", id)
	}
	return &c, nil
}

// ExistsByName checks whether another category already uses name
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("categories").Where(squirrel.Eq{"name": name})
	return exists(ctx, r.db, excluding(sub, excludeID))
}

// Update renames a category
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	stmt := psql.Update("categories").Set("name", c.Name).Where(squirrel.Eq{"id": c.ID})
	return execOne(ctx, r.db, stmt, categoryConstraints, "category", c.ID)
}

// Delete removes a category; its books become uncategorised
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("categories").Where(squirrel.Eq{"id": id}), categoryConstraints, "category", id)
}

// EnsureNames inserts every name that is not present yet and reports how
// many rows were added.
func (r *CategoryRepository) EnsureNames(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	insert := psql.Insert("categories").Columns("name")
	for _, name := range names {
		insert = insert.Values(name)
	}
	query, args, err := insert.Suffix("ON CONFLICT (name) DO NOTHING").ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error seeding categories: %w", err)
	}
	return tag.RowsAffected(), nil
}
