package services

import (
	"context"
	"time"

	"github.com/yigit/librarium/internal/app/models"
)

// RecordStore persists one entity. Implementations return
// apperrors.ErrResourceNotFound for unknown ids.
type RecordStore[T any] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id int64) error
}

// AuthorStore persists authors
type AuthorStore interface {
	RecordStore[models.Author]
}

// AuthorDetailStore persists author details
type AuthorDetailStore interface {
	RecordStore[models.AuthorDetail]
	GetByAuthorID(ctx context.Context, authorID int64) (*models.AuthorDetail, error)
	ExistsForAuthor(ctx context.Context, authorID, excludeID int64) (bool, error)
}

// CategoryStore persists categories
type CategoryStore interface {
	RecordStore[models.Category]
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	EnsureNames(ctx context.Context, names []string) (int64, error)
}

// LibraryStore persists libraries and their member and book sets
type LibraryStore interface {
	RecordStore[models.Library]
	MemberIDs(ctx context.Context, id int64) ([]int64, error)
	SetMembers(ctx context.Context, id int64, memberIDs []int64) error
	BookIDs(ctx context.Context, id int64) ([]int64, error)
	SetBooks(ctx context.Context, id int64, bookIDs []int64) error
}

// MemberStore persists members
type MemberStore interface {
	RecordStore[models.Member]
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// BookStore persists books
type BookStore interface {
	RecordStore[models.Book]
	ReviewRatings(ctx context.Context, id int64) ([]float64, error)
	ExistsByTitleAuthor(ctx context.Context, title string, authorID, excludeID int64) (bool, error)
}

// ReviewStore persists reviews
type ReviewStore interface {
	RecordStore[models.Review]
}

// BorrowStore persists borrows
type BorrowStore interface {
	RecordStore[models.Borrow]
	ExistsByMemberBookDate(ctx context.Context, memberID, bookID int64, borrowDate models.Date, excludeID int64) (bool, error)
}

// PostStore persists posts
type PostStore interface {
	RecordStore[models.Post]
}

// EventStore persists events and their book sets
type EventStore interface {
	RecordStore[models.Event]
	ExistsByTitleDate(ctx context.Context, title string, date time.Time, excludeID int64) (bool, error)
	BookIDs(ctx context.Context, id int64) ([]int64, error)
	SetBooks(ctx context.Context, id int64, bookIDs []int64) error
}

// EventParticipantStore persists event registrations
type EventParticipantStore interface {
	RecordStore[models.EventParticipant]
	ExistsByEventMember(ctx context.Context, eventID, memberID, excludeID int64) (bool, error)
}

// AdminUserStore persists console accounts
type AdminUserStore interface {
	Create(ctx context.Context, user *models.AdminUser) error
	GetByID(ctx context.Context, id int64) (*models.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	SetPassword(ctx context.Context, id int64, hash string) error
}

// Stores groups every store bound to the same connection or transaction
type Stores struct {
	Authors           AuthorStore
	AuthorDetails     AuthorDetailStore
	Categories        CategoryStore
	Libraries         LibraryStore
	Members           MemberStore
	Books             BookStore
	Reviews           ReviewStore
	Borrows           BorrowStore
	Posts             PostStore
	Events            EventStore
	EventParticipants EventParticipantStore
	AdminUsers        AdminUserStore
}

// TxRunner runs fn inside one transaction with stores bound to it. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner func(ctx context.Context, fn func(ctx context.Context, tx Stores) error) error
