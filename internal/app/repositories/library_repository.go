package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// LibraryRepository handles database operations for libraries and their
// member and book collections
type LibraryRepository struct {
	db db.Querier
}

// NewLibraryRepository creates a new LibraryRepository
func NewLibraryRepository(db db.Querier) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// Create inserts a new library
func (r *LibraryRepository) Create(ctx context.Context, l *models.Library) error {
	query, args, err := psql.Insert("libraries").
		Columns("name", "location", "site").
		Values(l.Name, l.Location, l.Site).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building library insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&l.ID); err != nil {
		return fmt.Errorf("error creating library: %w", err)
	}
	return nil
}

// GetByID retrieves a library by ID
func (r *LibraryRepository) GetByID(ctx context.Context, id int64) (*models.Library, error) {
	query, args, err := psql.Select("id", "name", "location", "site").From("libraries").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var l models.Library
	if err := r.db.QueryRow(ctx, query, args...).Scan(&l.ID, &l.Name, &l.Location, &l.Site); err != nil {
		return nil, notFound(err, "library %d not found", id)
	}
	return &l, nil
}

// Update writes every column of an existing library
func (r *LibraryRepository) Update(ctx context.Context, l *models.Library) error {
	stmt := psql.Update("libraries").
		Set("name", l.Name).
		Set("location", l.Location).
		Set("site", l.Site).
		Where(squirrel.Eq{"id": l.ID})
	return execOne(ctx, r.db, stmt, nil, "library", l.ID)
}

// Delete removes a library together with its borrows, posts and events
func (r *LibraryRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("libraries").Where(squirrel.Eq{"id": id}), nil, "library", id)
}

// MemberIDs lists the members registered at a library
func (r *LibraryRepository) MemberIDs(ctx context.Context, id int64) ([]int64, error) {
	return linkedIDs(ctx, r.db, "library_members", "library_id", "member_id", id)
}

// SetMembers replaces the members registered at a library
func (r *LibraryRepository) SetMembers(ctx context.Context, id int64, memberIDs []int64) error {
	return replaceLinks(ctx, r.db, "library_members", "library_id", "member_id", id, memberIDs, linkConstraints)
}

// BookIDs lists the books held by a library
func (r *LibraryRepository) BookIDs(ctx context.Context, id int64) ([]int64, error) {
	return linkedIDs(ctx, r.db, "library_books", "library_id", "book_id", id)
}

// SetBooks replaces the books held by a library
func (r *LibraryRepository) SetBooks(ctx context.Context, id int64, bookIDs []int64) error {
	return replaceLinks(ctx, r.db, "library_books", "library_id", "book_id", id, bookIDs, linkConstraints)
}
