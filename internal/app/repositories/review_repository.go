package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db db.Querier
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db db.Querier) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	query, args, err := psql.Insert("reviews").
		Columns("book_id", "reviewer_id", "rating", "description").
		Values(rv.BookID, rv.ReviewerID, rv.Rating, rv.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building review insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&rv.ID); err != nil {
		return fmt.Errorf("error creating review: %w", translate(err, reviewConstraints))
	}
	return nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	query, args, err := psql.Select("id", "book_id", "reviewer_id", "rating", "description").
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rv models.Review
	if err := r.db.QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.BookID, &rv.ReviewerID, &rv.Rating, &rv.Description); err != nil {
		return nil, notFound(err, "review %d not found", id)
	}
	return &rv, nil
}

// Update writes every column of an existing review
func (r *ReviewRepository) Update(ctx context.Context, rv *models.Review) error {
	stmt := psql.Update("reviews").
		Set("book_id", rv.BookID).
		Set("reviewer_id", rv.ReviewerID).
		Set("rating", rv.Rating).
		Set("description", rv.Description).
		Where(squirrel.Eq{"id": rv.ID})
	return execOne(ctx, r.db, stmt, reviewConstraints, "review", rv.ID)
}

// Delete removes a review
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("reviews").Where(squirrel.Eq{"id": id}), reviewConstraints, "review", id)
}
