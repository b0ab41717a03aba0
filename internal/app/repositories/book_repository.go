package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// BookRepository handles database operations for books
type BookRepository struct {
	db db.Querier
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(db db.Querier) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new book. Rating is derived and never written.
func (r *BookRepository) Create(ctx context.Context, b *models.Book) error {
	query, args, err := psql.Insert("books").
		Columns("title", "author_id", "publishing_date", "genre", "summary", "pages", "category_id").
		Values(b.Title, b.AuthorID, b.PublishingDate, b.Genre, b.Summary, b.Pages, b.CategoryID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building book insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("error creating book: %w", translate(err, bookConstraints))
	}
	return nil
}

// GetByID retrieves a book by ID without its rating
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	query, args, err := psql.
		Select("id", "title", "author_id", "publishing_date", "genre", "summary", "pages", "category_id").
		From("books").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var b models.Book
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Title, &b.AuthorID, &b.PublishingDate, &b.Genre, &b.Summary, &b.Pages, &b.CategoryID,
	)
	if err != nil {
		return nil, notFound(err, "book %d not found", id)
	}
	return &b, nil
}

// ReviewRatings lists the ratings given to a book
func (r *BookRepository) ReviewRatings(ctx context.Context, id int64) ([]float64, error) {
	query, args, err := psql.Select("rating").From("reviews").Where(squirrel.Eq{"book_id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching ratings of book %d: %w", id, err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[float64])
}

// ExistsByTitleAuthor checks whether another book by authorID has title
func (r *BookRepository) ExistsByTitleAuthor(ctx context.Context, title string, authorID, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("books").Where(squirrel.Eq{"title": title, "author_id": authorID})
	return exists(ctx, r.db, excluding(sub, excludeID))
}

// Update writes every stored column of an existing book
func (r *BookRepository) Update(ctx context.Context, b *models.Book) error {
	stmt := psql.Update("books").
		Set("title", b.Title).
		Set("author_id", b.AuthorID).
		Set("publishing_date", b.PublishingDate).
		Set("genre", b.Genre).
		Set("summary", b.Summary).
		Set("pages", b.Pages).
		Set("category_id", b.CategoryID).
		Where(squirrel.Eq{"id": b.ID})
	return execOne(ctx, r.db, stmt, bookConstraints, "book", b.ID)
}

// Delete removes a book with its reviews and borrows
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("books").Where(squirrel.Eq{"id": id}), bookConstraints, "book", id)
}
