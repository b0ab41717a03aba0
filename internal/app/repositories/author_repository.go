package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// AuthorRepository handles database operations for authors
type AuthorRepository struct {
	db db.Querier
}

// NewAuthorRepository creates a new AuthorRepository
func NewAuthorRepository(db db.Querier) *AuthorRepository {
	return &AuthorRepository{db: db}
}

var authorColumns = []string{"id", "first_name", "last_name", "birth_date", "profile", "deleted", "rating"}

func scanAuthor(row pgx.Row) (*models.Author, error) {
	var a models.Author
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.BirthDate, &a.Profile, &a.Deleted, &a.Rating)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new author and sets its ID
func (r *AuthorRepository) Create(ctx context.Context, a *models.Author) error {
	query, args, err := psql.Insert("authors").
		Columns("first_name", "last_name", "birth_date", "profile", "deleted", "rating").
		Values(a.FirstName, a.LastName, a.BirthDate, a.Profile, a.Deleted, a.Rating).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building author insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&a.ID); err != nil {
		return fmt.Errorf("error creating author: %w", translate(err, authorConstraints))
	}
	return nil
}

// GetByID retrieves an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	query, args, err := psql.Select(authorColumns...).From("authors").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanAuthor(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "author %d not found", id)
	}
	return a, nil
}

// Update writes every column of an existing author
func (r *AuthorRepository) Update(ctx context.Context, a *models.Author) error {
	stmt := psql.Update("authors").
		Set("first_name", a.FirstName).
		Set("last_name", a.LastName).
		Set("birth_date", a.BirthDate).
		Set("profile", a.Profile).
		Set("deleted", a.Deleted).
		Set("rating", a.Rating).
		Where(squirrel.Eq{"id": a.ID})
	return execOne(ctx, r.db, stmt, authorConstraints, "author", a.ID)
}

// Delete removes an author. Books keep their rows with the author cleared.
func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("authors").Where(squirrel.Eq{"id": id}), authorConstraints, "author", id)
}

// AuthorDetailRepository handles database operations for author details
type AuthorDetailRepository struct {
	db db.Querier
}

// NewAuthorDetailRepository creates a new AuthorDetailRepository
func NewAuthorDetailRepository(db db.Querier) *AuthorDetailRepository {
	return &AuthorDetailRepository{db: db}
}

var authorDetailColumns = []string{"id", "author_id", "biography", "birth_city", "gender"}

func scanAuthorDetail(row pgx.Row) (*models.AuthorDetail, error) {
	var d models.AuthorDetail
	if err := row.Scan(&d.ID, &d.AuthorID, &d.Biography, &d.BirthCity, &d.Gender); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new author detail
func (r *AuthorDetailRepository) Create(ctx context.Context, d *models.AuthorDetail) error {
	query, args, err := psql.Insert("author_details").
		Columns("author_id", "biography", "birth_city", "gender").
		Values(d.AuthorID, d.Biography, d.BirthCity, d.Gender).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building author detail insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&d.ID); err != nil {
		return fmt.Errorf("error creating author detail: %w", translate(err, authorDetailConstraints))
	}
	return nil
}

// GetByID retrieves an author detail by ID
func (r *AuthorDetailRepository) GetByID(ctx context.Context, id int64) (*models.AuthorDetail, error) {
	query, args, err := psql.Select(authorDetailColumns...).From("author_details").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	d, err := scanAuthorDetail(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "author detail %d not found", id)
	}
	return d, nil
}

// GetByAuthorID retrieves the detail record of an author
func (r *AuthorDetailRepository) GetByAuthorID(ctx context.Context, authorID int64) (*models.AuthorDetail, error) {
	query, args, err := psql.Select(authorDetailColumns...).From("author_details").Where(squirrel.Eq{"author_id": authorID}).ToSql()
	if err != nil {
		return nil, err
	}

	d, err := scanAuthorDetail(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "author %d has no detail record", authorID)
	}
	return d, nil
}

// ExistsForAuthor reports whether another detail record belongs to authorID
func (r *AuthorDetailRepository) ExistsForAuthor(ctx context.Context, authorID, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("author_details").Where(squirrel.Eq{"author_id": authorID})
	return exists(ctx, r.db, excluding(sub, excludeID))
}

// Update writes every column of an existing author detail
func (r *AuthorDetailRepository) Update(ctx context.Context, d *models.AuthorDetail) error {
	stmt := psql.Update("author_details").
		Set("author_id", d.AuthorID).
		Set("biography", d.Biography).
		Set("birth_city", d.BirthCity).
		Set("gender", d.Gender).
		Where(squirrel.Eq{"id": d.ID})
	return execOne(ctx, r.db, stmt, authorDetailConstraints, "author detail", d.ID)
}

// Delete removes an author detail
func (r *AuthorDetailRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("author_details").Where(squirrel.Eq{"id": id}), authorDetailConstraints, "author detail", id)
}
