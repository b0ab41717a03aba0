package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// BorrowRepository handles database operations for borrows
type BorrowRepository struct {
	db db.Querier
}

// NewBorrowRepository creates a new BorrowRepository
func NewBorrowRepository(db db.Querier) *BorrowRepository {
	return &BorrowRepository{db: db}
}

// Create inserts a new borrow. Overdue is derived and never written.
func (r *BorrowRepository) Create(ctx context.Context, b *models.Borrow) error {
	query, args, err := psql.Insert("borrows").
		Columns("member_id", "book_id", "library_id", "borrow_date", "return_date", "returned").
		Values(b.MemberID, b.BookID, b.LibraryID, b.BorrowDate, b.ReturnDate, b.Returned).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building borrow insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("error creating borrow: %w", translate(err, borrowConstraints))
	}
	return nil
}

// GetByID retrieves a borrow by ID
func (r *BorrowRepository) GetByID(ctx context.Context, id int64) (*models.Borrow, error) {
	query, args, err := psql.
		Select("id", "member_id", "book_id", "library_id", "borrow_date", "return_date", "returned").
		From("borrows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var b models.Borrow
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.MemberID, &b.BookID, &b.LibraryID, &b.BorrowDate, &b.ReturnDate, &b.Returned,
	)
	if err != nil {
		return nil, notFound(err, "borrow %d not found", id)
	}
	return &b, nil
}

// ExistsByMemberBookDate checks whether the member already borrowed the book
// on that day
func (r *BorrowRepository) ExistsByMemberBookDate(ctx context.Context, memberID, bookID int64, borrowDate models.Date, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("borrows").Where(squirrel.Eq{
		"member_id":   memberID,
		"book_id":     bookID,
		"borrow_date": borrowDate,
	})
	return exists(ctx, r.db, excluding(sub, excludeID))
}

// Update writes every stored column of an existing borrow
func (r *BorrowRepository) Update(ctx context.Context, b *models.Borrow) error {
	stmt := psql.Update("borrows").
		Set("member_id", b.MemberID).
		Set("book_id", b.BookID).
		Set("library_id", b.LibraryID).
		Set("borrow_date", b.BorrowDate).
		Set("return_date", b.ReturnDate).
		Set("returned", b.Returned).
		Where(squirrel.Eq{"id": b.ID})
	return execOne(ctx, r.db, stmt, borrowConstraints, "borrow", b.ID)
}

// Delete removes a borrow
func (r *BorrowRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("borrows").Where(squirrel.Eq{"id": id}), borrowConstraints, "borrow", id)
}
