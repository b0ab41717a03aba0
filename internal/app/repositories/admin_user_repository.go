package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// AdminUserRepository handles database operations for console accounts
type AdminUserRepository struct {
	db db.Querier
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db db.Querier) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

var adminUserColumns = []string{"id", "username", "password_hash", "active", "created_at", "last_login"}

// Create inserts a new console account
func (r *AdminUserRepository) Create(ctx context.Context, u *models.AdminUser) error {
	query, args, err := psql.Insert("admin_users").
		Columns("username", "password_hash", "active").
		Values(u.Username, u.PasswordHash, u.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building admin user insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
		return fmt.Errorf("error creating admin user: %w", translate(err, adminUserConstraints))
	}
	return nil
}

func (r *AdminUserRepository) getBy(ctx context.Context, where squirrel.Eq, what string) (*models.AdminUser, error) {
	query, args, err := psql.Select(adminUserColumns...).From("admin_users").Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	var u models.AdminUser
	err = r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, notFound(err, "admin user %s not found", what)
	}
	return &u, nil
}

// GetByID retrieves a console account by ID
func (r *AdminUserRepository) GetByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id}, fmt.Sprint(id))
}

// GetByUsername retrieves a console account by username
func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	return r.getBy(ctx, squirrel.Eq{"username": username}, fmt.Sprintf("%q", username))
}

// UpdateLastLogin stamps a successful login
func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	stmt := psql.Update("admin_users").Set("last_login", at).Where(squirrel.Eq{"id": id})
	return execOne(ctx, r.db, stmt, nil, "admin user", id)
}

// SetPassword replaces the password hash of an account and reactivates it
func (r *AdminUserRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	stmt := psql.Update("admin_users").
		Set("password_hash", hash).
		Set("active", true).
		Where(squirrel.Eq{"id": id})
	return execOne(ctx, r.db, stmt, nil, "admin user", id)
}
