package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/validation"
)

// RecordService is the create, read, update and delete surface of one entity
type RecordService[T any] interface {
	Create(ctx context.Context, record *T) error
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, record *T) error
	Delete(ctx context.Context, id int64) error
}

// recordService validates and checks uniqueness before every write, then
// fills derived values after every read or write.
type recordService[T any] struct {
	store RecordStore[T]
	id    func(*T) *int64

	normalize func(*T)
	unique    func(ctx context.Context, record *T) error
	derive    func(ctx context.Context, record *T) error
}

func (s *recordService[T]) Create(ctx context.Context, record *T) error {
	*s.id(record) = 0
	if err := s.check(ctx, record); err != nil {
		return err
	}
	if err := s.store.Create(ctx, record); err != nil {
		return err
	}
	return s.fill(ctx, record)
}

func (s *recordService[T]) Get(ctx context.Context, id int64) (*T, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.fill(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *recordService[T]) Update(ctx context.Context, id int64, record *T) error {
	*s.id(record) = id
	if err := s.check(ctx, record); err != nil {
		return err
	}
	if err := s.store.Update(ctx, record); err != nil {
		return err
	}
	return s.fill(ctx, record)
}

func (s *recordService[T]) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func (s *recordService[T]) check(ctx context.Context, record *T) error {
	if s.normalize != nil {
		s.normalize(record)
	}
	if err := validation.Struct(record); err != nil {
		return err
	}
	if s.unique != nil {
		return s.unique(ctx, record)
	}
	return nil
}

func (s *recordService[T]) fill(ctx context.Context, record *T) error {
	if s.derive == nil {
		return nil
	}
	return s.derive(ctx, record)
}

// taken turns a positive existence check into a uniqueness error
func taken(found bool, err error, field, message string) error {
	if err != nil {
		return fmt.Errorf("checking %s uniqueness: %w", field, err)
	}
	if found {
		return apperrors.NewUniqueViolation(field, message)
	}
	return nil
}

// optionalURL maps a blank URL to NULL
func optionalURL(u **string) {
	if *u == nil {
		return
	}
	if v := strings.TrimSpace(**u); v == "" {
		*u = nil
	} else {
		*u = &v
	}
}

// records holds one recordService per entity over a single Stores value
type records struct {
	authors           *recordService[models.Author]
	authorDetails     *recordService[models.AuthorDetail]
	categories        *recordService[models.Category]
	libraries         *recordService[models.Library]
	members           *recordService[models.Member]
	books             *recordService[models.Book]
	reviews           *recordService[models.Review]
	borrows           *recordService[models.Borrow]
	posts             *recordService[models.Post]
	events            *recordService[models.Event]
	eventParticipants *recordService[models.EventParticipant]
}

func newRecords(st Stores, now func() time.Time) *records {
	return &records{
		authors: &recordService[models.Author]{
			store: st.Authors,
			id:    func(a *models.Author) *int64 { return &a.ID },
			normalize: func(a *models.Author) {
				a.FirstName, a.LastName = strings.TrimSpace(a.FirstName), strings.TrimSpace(a.LastName)
				optionalURL(&a.Profile)
			},
		},
		authorDetails: &recordService[models.AuthorDetail]{
			store: st.AuthorDetails,
			id:    func(d *models.AuthorDetail) *int64 { return &d.ID },
			unique: func(ctx context.Context, d *models.AuthorDetail) error {
				found, err := st.AuthorDetails.ExistsForAuthor(ctx, d.AuthorID, d.ID)
				return taken(found, err, "author_id", "Author detail with this Author already exists.")
			},
		},
		categories: &recordService[models.Category]{
			store: st.Categories,
			id:    func(c *models.Category) *int64 { return &c.ID },
			normalize: func(c *models.Category) {
				c.Name = strings.TrimSpace(c.Name)
			},
			unique: func(ctx context.Context, c *models.Category) error {
				found, err := st.Categories.ExistsByName(ctx, c.Name, c.ID)
				return taken(found, err, "name", "Category with this Name already exists.")
			},
		},
		libraries: &recordService[models.Library]{
			store: st.Libraries,
			id:    func(l *models.Library) *int64 { return &l.ID },
			normalize: func(l *models.Library) {
				optionalURL(&l.Site)
			},
		},
		members: &recordService[models.Member]{
			store: st.Members,
			id:    func(m *models.Member) *int64 { return &m.ID },
			normalize: func(m *models.Member) {
				m.Email = strings.TrimSpace(m.Email)
			},
			unique: func(ctx context.Context, m *models.Member) error {
				found, err := st.Members.ExistsByEmail(ctx, m.Email, m.ID)
				return taken(found, err, "email", "Member with this Email already exists.")
			},
		},
		books: &recordService[models.Book]{
			store: st.Books,
			id:    func(b *models.Book) *int64 { return &b.ID },
			normalize: func(b *models.Book) {
				b.Title = strings.TrimSpace(b.Title)
				b.Rating = 0
			},
			// Books without an author are never duplicates of each other,
			// matching how the database treats NULL in unique constraints.
			unique: func(ctx context.Context, b *models.Book) error {
				if b.AuthorID == nil {
					return nil
				}
				found, err := st.Books.ExistsByTitleAuthor(ctx, b.Title, *b.AuthorID, b.ID)
				return taken(found, err, "title", "Book with this Title and Author already exists.")
			},
			derive: func(ctx context.Context, b *models.Book) error {
				ratings, err := st.Books.ReviewRatings(ctx, b.ID)
				if err != nil {
					return err
				}
				b.Rating = models.AverageRating(ratings)
				return nil
			},
		},
		reviews: &recordService[models.Review]{
			store: st.Reviews,
			id:    func(r *models.Review) *int64 { return &r.ID },
		},
		borrows: &recordService[models.Borrow]{
			store: st.Borrows,
			id:    func(b *models.Borrow) *int64 { return &b.ID },
			unique: func(ctx context.Context, b *models.Borrow) error {
				found, err := st.Borrows.ExistsByMemberBookDate(ctx, b.MemberID, b.BookID, b.BorrowDate, b.ID)
				return taken(found, err, "borrow_date", "Borrow with this Member, Book and Borrow date already exists.")
			},
			derive: func(_ context.Context, b *models.Borrow) error {
				b.Overdue = b.IsOverdue(now())
				return nil
			},
		},
		posts: &recordService[models.Post]{
			store: st.Posts,
			id:    func(p *models.Post) *int64 { return &p.ID },
			normalize: func(p *models.Post) {
				p.Title = strings.TrimSpace(p.Title)
			},
		},
		events: &recordService[models.Event]{
			store: st.Events,
			id:    func(e *models.Event) *int64 { return &e.ID },
			normalize: func(e *models.Event) {
				e.Title = strings.TrimSpace(e.Title)
			},
			unique: func(ctx context.Context, e *models.Event) error {
				found, err := st.Events.ExistsByTitleDate(ctx, e.Title, e.Date, e.ID)
				return taken(found, err, "title", "Event with this Title and Date already exists.")
			},
		},
		eventParticipants: &recordService[models.EventParticipant]{
			store: st.EventParticipants,
			id:    func(p *models.EventParticipant) *int64 { return &p.ID },
			normalize: func(p *models.EventParticipant) {
				if p.RegistrationDate.IsZero() {
					p.RegistrationDate = models.DateOf(now())
				}
			},
			unique: func(ctx context.Context, p *models.EventParticipant) error {
				found, err := st.EventParticipants.ExistsByEventMember(ctx, p.EventID, p.MemberID, p.ID)
				return taken(found, err, "member_id", "Event participant with this Event and Member already exists.")
			},
		},
	}
}
