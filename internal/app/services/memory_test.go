package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// memTable is an in-memory stand-in for one table
type memTable[T any] struct {
	name string
	id   func(*T) *int64
	rows map[int64]T
	next int64
}

func newMemTable[T any](name string, id func(*T) *int64) *memTable[T] {
	return &memTable[T]{name: name, id: id, rows: map[int64]T{}}
}

func (t *memTable[T]) Create(_ context.Context, record *T) error {
	t.next++
	*t.id(record) = t.next
	t.rows[t.next] = *record
	return nil
}

func (t *memTable[T]) GetByID(_ context.Context, id int64) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", t.name, id))
	}
	return &row, nil
}

func (t *memTable[T]) Update(_ context.Context, record *T) error {
	id := *t.id(record)
	if _, ok := t.rows[id]; !ok {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", t.name, id))
	}
	t.rows[id] = *record
	return nil
}

func (t *memTable[T]) Delete(_ context.Context, id int64) error {
	if _, ok := t.rows[id]; !ok {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", t.name, id))
	}
	delete(t.rows, id)
	return nil
}

func (t *memTable[T]) exists(match func(T) bool, excludeID int64) bool {
	for id, row := range t.rows {
		if id != excludeID && match(row) {
			return true
		}
	}
	return false
}

func (t *memTable[T]) snapshot() func() {
	rows := make(map[int64]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	next := t.next
	return func() {
		t.rows, t.next = rows, next
	}
}

type memLinks map[int64][]int64

func (l memLinks) list(id int64) []int64 {
	out := append([]int64{}, l[id]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l memLinks) snapshot() func() {
	saved := make(map[int64][]int64, len(l))
	for k, v := range l {
		saved[k] = append([]int64(nil), v...)
	}
	return func() {
		for k := range l {
			delete(l, k)
		}
		for k, v := range saved {
			l[k] = v
		}
	}
}

type memAuthors struct{ *memTable[models.Author] }

type memAuthorDetails struct{ *memTable[models.AuthorDetail] }

func (s memAuthorDetails) GetByAuthorID(_ context.Context, authorID int64) (*models.AuthorDetail, error) {
	for _, d := range s.rows {
		if d.AuthorID == authorID {
			return &d, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("no detail")
}

func (s memAuthorDetails) ExistsForAuthor(_ context.Context, authorID, excludeID int64) (bool, error) {
	return s.exists(func(d models.AuthorDetail) bool { return d.AuthorID == authorID }, excludeID), nil
}

type memCategories struct{ *memTable[models.Category] }

func (s memCategories) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	return s.exists(func(c models.Category) bool { return c.Name == name }, excludeID), nil
}

func (s memCategories) EnsureNames(ctx context.Context, names []string) (int64, error) {
	var added int64
	for _, name := range names {
		if s.exists(func(c models.Category) bool { return c.Name == name }, 0) {
			continue
		}
		if err := s.Create(ctx, &models.Category{Name: name}); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

type memLibraries struct {
	*memTable[models.Library]
	members, books memLinks
}

func (s memLibraries) MemberIDs(_ context.Context, id int64) ([]int64, error) {
	return s.members.list(id), nil
}

func (s memLibraries) SetMembers(_ context.Context, id int64, ids []int64) error {
	s.members[id] = append([]int64(nil), ids...)
	return nil
}

func (s memLibraries) BookIDs(_ context.Context, id int64) ([]int64, error) {
	return s.books.list(id), nil
}

func (s memLibraries) SetBooks(_ context.Context, id int64, ids []int64) error {
	s.books[id] = append([]int64(nil), ids...)
	return nil
}

type memMembers struct{ *memTable[models.Member] }

func (s memMembers) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	return s.exists(func(m models.Member) bool { return m.Email == email }, excludeID), nil
}

type memBooks struct {
	*memTable[models.Book]
	reviews *memTable[models.Review]
}

func (s memBooks) ReviewRatings(_ context.Context, id int64) ([]float64, error) {
	var out []float64
	for _, r := range s.reviews.rows {
		if r.BookID == id {
			out = append(out, r.Rating)
		}
	}
	return out, nil
}

func (s memBooks) ExistsByTitleAuthor(_ context.Context, title string, authorID, excludeID int64) (bool, error) {
	return s.exists(func(b models.Book) bool {
		return b.Title == title && b.AuthorID != nil && *b.AuthorID == authorID
	}, excludeID), nil
}

type memReviews struct{ *memTable[models.Review] }

type memBorrows struct{ *memTable[models.Borrow] }

func (s memBorrows) ExistsByMemberBookDate(_ context.Context, memberID, bookID int64, borrowDate models.Date, excludeID int64) (bool, error) {
	return s.exists(func(b models.Borrow) bool {
		return b.MemberID == memberID && b.BookID == bookID && b.BorrowDate.Equal(borrowDate.Time)
	}, excludeID), nil
}

type memPosts struct{ *memTable[models.Post] }

type memEvents struct {
	*memTable[models.Event]
	books memLinks
}

func (s memEvents) ExistsByTitleDate(_ context.Context, title string, date time.Time, excludeID int64) (bool, error) {
	return s.exists(func(e models.Event) bool { return e.Title == title && e.Date.Equal(date) }, excludeID), nil
}

func (s memEvents) BookIDs(_ context.Context, id int64) ([]int64, error) {
	return s.books.list(id), nil
}

func (s memEvents) SetBooks(_ context.Context, id int64, ids []int64) error {
	s.books[id] = append([]int64(nil), ids...)
	return nil
}

type memParticipants struct {
	*memTable[models.EventParticipant]
}

func (s memParticipants) ExistsByEventMember(_ context.Context, eventID, memberID, excludeID int64) (bool, error) {
	return s.exists(func(p models.EventParticipant) bool { return p.EventID == eventID && p.MemberID == memberID }, excludeID), nil
}

type memAdminUsers struct{ *memTable[models.AdminUser] }

func (s memAdminUsers) GetByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	for _, u := range s.rows {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("admin user not found")
}

func (s memAdminUsers) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	u, ok := s.rows[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("admin user not found")
	}
	u.LastLogin = &at
	s.rows[id] = u
	return nil
}

func (s memAdminUsers) SetPassword(_ context.Context, id int64, hash string) error {
	u, ok := s.rows[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("admin user not found")
	}
	u.PasswordHash, u.Active = hash, true
	s.rows[id] = u
	return nil
}

// memDB is a complete in-memory Stores with snapshot rollback
type memDB struct {
	stores    Stores
	snapshots []func() func()
}

func newMemDB() *memDB {
	reviews := newMemTable("review", func(r *models.Review) *int64 { return &r.ID })
	authors := newMemTable("author", func(a *models.Author) *int64 { return &a.ID })
	details := newMemTable("author detail", func(d *models.AuthorDetail) *int64 { return &d.ID })
	categories := newMemTable("category", func(c *models.Category) *int64 { return &c.ID })
	libraries := newMemTable("library", func(l *models.Library) *int64 { return &l.ID })
	members := newMemTable("member", func(m *models.Member) *int64 { return &m.ID })
	books := newMemTable("book", func(b *models.Book) *int64 { return &b.ID })
	borrows := newMemTable("borrow", func(b *models.Borrow) *int64 { return &b.ID })
	posts := newMemTable("post", func(p *models.Post) *int64 { return &p.ID })
	events := newMemTable("event", func(e *models.Event) *int64 { return &e.ID })
	participants := newMemTable("event participant", func(p *models.EventParticipant) *int64 { return &p.ID })
	users := newMemTable("admin user", func(u *models.AdminUser) *int64 { return &u.ID })
	libraryMembers, libraryBooks, eventBooks := memLinks{}, memLinks{}, memLinks{}

	db := &memDB{
		stores: Stores{
			Authors:           memAuthors{authors},
			AuthorDetails:     memAuthorDetails{details},
			Categories:        memCategories{categories},
			Libraries:         memLibraries{libraries, libraryMembers, libraryBooks},
			Members:           memMembers{members},
			Books:             memBooks{books, reviews},
			Reviews:           memReviews{reviews},
			Borrows:           memBorrows{borrows},
			Posts:             memPosts{posts},
			Events:            memEvents{events, eventBooks},
			EventParticipants: memParticipants{participants},
			AdminUsers:        memAdminUsers{users},
		},
	}
	db.snapshots = []func() func(){
		reviews.snapshot, authors.snapshot, details.snapshot, categories.snapshot,
		libraries.snapshot, members.snapshot, books.snapshot, borrows.snapshot,
		posts.snapshot, events.snapshot, participants.snapshot, users.snapshot,
		libraryMembers.snapshot, libraryBooks.snapshot, eventBooks.snapshot,
	}
	return db
}

// tx runs fn against the same stores and restores every table if fn fails
func (db *memDB) tx(ctx context.Context, fn func(ctx context.Context, tx Stores) error) error {
	restores := make([]func(), len(db.snapshots))
	for i, snap := range db.snapshots {
		restores[i] = snap()
	}
	if err := fn(ctx, db.stores); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}
