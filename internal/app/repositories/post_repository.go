package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db db.Querier
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db db.Querier) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post; the database stamps both timestamps
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	query, args, err := psql.Insert("posts").
		Columns("title", "body", "moderated", "author_id", "library_id").
		Values(p.Title, p.Body, p.Moderated, p.AuthorID, p.LibraryID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building post insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error creating post: %w", translate(err, postConstraints))
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query, args, err := psql.
		Select("id", "title", "body", "moderated", "created_at", "updated_at", "author_id", "library_id").
		From("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Post
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Title, &p.Body, &p.Moderated, &p.CreatedAt, &p.UpdatedAt, &p.AuthorID, &p.LibraryID,
	)
	if err != nil {
		return nil, notFound(err, "post %d not found", id)
	}
	return &p, nil
}

// Update writes the editable columns of a post and refreshes updated_at.
// created_at never changes.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	query, args, err := psql.Update("posts").
		Set("title", p.Title).
		Set("body", p.Body).
		Set("moderated", p.Moderated).
		Set("author_id", p.AuthorID).
		Set("library_id", p.LibraryID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building post update: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error updating post %d: %w", p.ID, notFound(translate(err, postConstraints), "post %d not found", p.ID))
	}
	return nil
}

// Delete removes a post
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("posts").Where(squirrel.Eq{"id": id}), postConstraints, "post", id)
}
