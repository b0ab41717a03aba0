package models

import "time"

// Borrow records a member taking a book out of a library. Overdue is derived
// on read.
type Borrow struct {
	ID         int64 `json:"id"`
	MemberID   int64 `json:"member_id" validate:"gt=0"`
	BookID     int64 `json:"book_id" validate:"gt=0"`
	LibraryID  int64 `json:"library_id" validate:"gt=0"`
	BorrowDate Date  `json:"borrow_date" validate:"required"`
	ReturnDate Date  `json:"return_date" validate:"required"`
	Returned   bool  `json:"returned"`
	Overdue    bool  `json:"is_overdue"`
}

// IsOverdue reports whether the book is still out past its return date.
// Only calendar days are compared, so a borrow due today is not overdue.
func (b *Borrow) IsOverdue(now time.Time) bool {
	if b.Returned {
		return false
	}
	return b.ReturnDate.Before(DateOf(now))
}
