package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// MemberRepository handles database operations for members
type MemberRepository struct {
	db db.Querier
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db db.Querier) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create inserts a new member
func (r *MemberRepository) Create(ctx context.Context, m *models.Member) error {
	query, args, err := psql.Insert("members").
		Columns("first_name", "last_name", "email", "gender", "birth_date", "age", "role", "active").
		Values(m.FirstName, m.LastName, m.Email, m.Gender, m.BirthDate, m.Age, m.Role, m.Active).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building member insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&m.ID); err != nil {
		return fmt.Errorf("error creating member: %w", translate(err, memberConstraints))
	}
	return nil
}

// GetByID retrieves a member by ID
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	query, args, err := psql.
		Select("id", "first_name", "last_name", "email", "gender", "birth_date", "age", "role", "active").
		From("members").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var m models.Member
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Gender, &m.BirthDate, &m.Age, &m.Role, &m.Active,
	)
	if err != nil {
		return nil, notFound(err, "member %d not found", id)
	}
	return &m, nil
}

// ExistsByEmail checks whether another member already uses email
func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("members").Where(squirrel.Eq{"email": email})
	return exists(ctx, r.db, excluding(sub, excludeID))
}

// Update writes every column of an existing member
func (r *MemberRepository) Update(ctx context.Context, m *models.Member) error {
	stmt := psql.Update("members").
		Set("first_name", m.FirstName).
		Set("last_name", m.LastName).
		Set("email", m.Email).
		Set("gender", m.Gender).
		Set("birth_date", m.BirthDate).
		Set("age", m.Age).
		Set("role", m.Role).
		Set("active", m.Active).
		Where(squirrel.Eq{"id": m.ID})
	return execOne(ctx, r.db, stmt, memberConstraints, "member", m.ID)
}

// Delete removes a member with their reviews, borrows, posts and registrations
func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("members").Where(squirrel.Eq{"id": id}), memberConstraints, "member", id)
}
