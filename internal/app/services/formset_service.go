package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/logger"
)

// AuthorFormset is an author edited together with its detail and books.
// Delete keys: "detail", "books".
type AuthorFormset struct {
	Author models.Author        `json:"author"`
	Detail *models.AuthorDetail `json:"detail,omitempty"`
	Books  []models.Book        `json:"books"`
	Delete map[string][]int64   `json:"delete,omitempty"`
}

// LibraryFormset is a library edited together with its events.
// Delete keys: "events".
type LibraryFormset struct {
	Library models.Library     `json:"library"`
	Events  []models.Event     `json:"events"`
	Delete  map[string][]int64 `json:"delete,omitempty"`
}

// MemberFormset is a member edited together with their posts, borrows and
// reviews. Delete keys: "posts", "borrows", "reviews".
type MemberFormset struct {
	Member  models.Member      `json:"member"`
	Posts   []models.Post      `json:"posts"`
	Borrows []models.Borrow    `json:"borrows"`
	Reviews []models.Review    `json:"reviews"`
	Delete  map[string][]int64 `json:"delete,omitempty"`
}

// EventFormset is an event edited together with its participants.
// Delete keys: "participants".
type EventFormset struct {
	Event        models.Event              `json:"event"`
	Participants []models.EventParticipant `json:"participants"`
	Delete       map[string][]int64        `json:"delete,omitempty"`
}

// FormsetService saves a parent record and its inline children in one
// transaction
type FormsetService struct {
	tx  TxRunner
	now func() time.Time
}

// NewFormsetService creates a new FormsetService
func NewFormsetService(tx TxRunner, now func() time.Time) *FormsetService {
	return &FormsetService{tx: tx, now: now}
}

// children binds one inline child kind to its parent foreign key
type children[T any] struct {
	key       string
	records   *recordService[T]
	parentOf  func(*T) int64
	setParent func(*T, int64)
}

// save deletes the listed children, then creates rows without an id and
// updates the others. Every referenced child must belong to parentID.
func (c children[T]) save(ctx context.Context, parentID int64, rows []T, deletes []int64) error {
	for _, id := range deletes {
		if err := c.owned(ctx, parentID, id); err != nil {
			return prefixed(err, "delete."+c.key)
		}
		if err := c.records.Delete(ctx, id); err != nil {
			return err
		}
	}

	for i := range rows {
		row := &rows[i]
		id := *c.records.id(row)
		c.setParent(row, parentID)

		var err error
		if id == 0 {
			err = c.records.Create(ctx, row)
		} else if err = c.owned(ctx, parentID, id); err == nil {
			err = c.records.Update(ctx, id, row)
		}
		if err != nil {
			return prefixed(err, fmt.Sprintf("%s[%d]", c.key, i))
		}
	}
	return nil
}

func (c children[T]) owned(ctx context.Context, parentID, id int64) error {
	existing, err := c.records.Get(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewValidationError("id", fmt.Sprintf("record %d does not exist", id))
	}
	if err != nil {
		return err
	}
	if c.parentOf(existing) != parentID {
		return apperrors.NewValidationError("id", fmt.Sprintf("record %d belongs to another parent", id))
	}
	return nil
}

// prefixed qualifies the field of a field error with the child's position
func prefixed(err error, prefix string) error {
	var fe *apperrors.FieldError
	if !errors.As(err, &fe) {
		return err
	}
	field := prefix
	if fe.Field != "" {
		field += "." + fe.Field
	}
	return &apperrors.FieldError{Kind: fe.Kind, Field: field, Message: fe.Message}
}

// checkDeleteKeys rejects delete lists for child kinds the formset lacks
func checkDeleteKeys(deletes map[string][]int64, allowed ...string) error {
	var unknown []string
	for key := range deletes {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return apperrors.NewValidationError("delete", fmt.Sprintf("unknown inline %q", unknown[0]))
}

// SaveAuthor updates author id with its detail and books
func (s *FormsetService) SaveAuthor(ctx context.Context, id int64, f *AuthorFormset) error {
	if err := checkDeleteKeys(f.Delete, "detail", "books"); err != nil {
		return err
	}

	err := s.tx(ctx, func(ctx context.Context, tx Stores) error {
		r := newRecords(tx, s.now)
		if err := r.authors.Update(ctx, id, &f.Author); err != nil {
			return prefixed(err, "author")
		}

		var details []models.AuthorDetail
		if f.Detail != nil {
			details = []models.AuthorDetail{*f.Detail}
		}
		detail := children[models.AuthorDetail]{
			key:       "detail",
			records:   r.authorDetails,
			parentOf:  func(d *models.AuthorDetail) int64 { return d.AuthorID },
			setParent: func(d *models.AuthorDetail, pid int64) { d.AuthorID = pid },
		}
		if err := detail.save(ctx, id, details, f.Delete["detail"]); err != nil {
			return err
		}
		if f.Detail != nil {
			*f.Detail = details[0]
		}

		books := children[models.Book]{
			key:     "books",
			records: r.books,
			parentOf: func(b *models.Book) int64 {
				if b.AuthorID == nil {
					return 0
				}
				return *b.AuthorID
			},
			setParent: func(b *models.Book, pid int64) { b.AuthorID = &pid },
		}
		return books.save(ctx, id, f.Books, f.Delete["books"])
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("author_id", id).Int("books", len(f.Books)).Msg("Author formset saved")
	return nil
}

// SaveLibrary updates library id with its events
func (s *FormsetService) SaveLibrary(ctx context.Context, id int64, f *LibraryFormset) error {
	if err := checkDeleteKeys(f.Delete, "events"); err != nil {
		return err
	}

	err := s.tx(ctx, func(ctx context.Context, tx Stores) error {
		r := newRecords(tx, s.now)
		if err := r.libraries.Update(ctx, id, &f.Library); err != nil {
			return prefixed(err, "library")
		}

		events := children[models.Event]{
			key:       "events",
			records:   r.events,
			parentOf:  func(e *models.Event) int64 { return e.LibraryID },
			setParent: func(e *models.Event, pid int64) { e.LibraryID = pid },
		}
		return events.save(ctx, id, f.Events, f.Delete["events"])
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("library_id", id).Int("events", len(f.Events)).Msg("Library formset saved")
	return nil
}

// SaveMember updates member id with their posts, borrows and reviews
func (s *FormsetService) SaveMember(ctx context.Context, id int64, f *MemberFormset) error {
	if err := checkDeleteKeys(f.Delete, "posts", "borrows", "reviews"); err != nil {
		return err
	}

	err := s.tx(ctx, func(ctx context.Context, tx Stores) error {
		r := newRecords(tx, s.now)
		if err := r.members.Update(ctx, id, &f.Member); err != nil {
			return prefixed(err, "member")
		}

		posts := children[models.Post]{
			key:       "posts",
			records:   r.posts,
			parentOf:  func(p *models.Post) int64 { return p.AuthorID },
			setParent: func(p *models.Post, pid int64) { p.AuthorID = pid },
		}
		if err := posts.save(ctx, id, f.Posts, f.Delete["posts"]); err != nil {
			return err
		}

		borrows := children[models.Borrow]{
			key:       "borrows",
			records:   r.borrows,
			parentOf:  func(b *models.Borrow) int64 { return b.MemberID },
			setParent: func(b *models.Borrow, pid int64) { b.MemberID = pid },
		}
		if err := borrows.save(ctx, id, f.Borrows, f.Delete["borrows"]); err != nil {
			return err
		}

		reviews := children[models.Review]{
			key:       "reviews",
			records:   r.reviews,
			parentOf:  func(rv *models.Review) int64 { return rv.ReviewerID },
			setParent: func(rv *models.Review, pid int64) { rv.ReviewerID = pid },
		}
		return reviews.save(ctx, id, f.Reviews, f.Delete["reviews"])
	})
	if err != nil {
		return err
	}

	logger.Info().
		Int64("member_id", id).
		Int("posts", len(f.Posts)).
		Int("borrows", len(f.Borrows)).
		Int("reviews", len(f.Reviews)).
		Msg("Member formset saved")
	return nil
}

// SaveEvent updates event id with its participants
func (s *FormsetService) SaveEvent(ctx context.Context, id int64, f *EventFormset) error {
	if err := checkDeleteKeys(f.Delete, "participants"); err != nil {
		return err
	}

	err := s.tx(ctx, func(ctx context.Context, tx Stores) error {
		r := newRecords(tx, s.now)
		if err := r.events.Update(ctx, id, &f.Event); err != nil {
			return prefixed(err, "event")
		}

		participants := children[models.EventParticipant]{
			key:       "participants",
			records:   r.eventParticipants,
			parentOf:  func(p *models.EventParticipant) int64 { return p.EventID },
			setParent: func(p *models.EventParticipant, pid int64) { p.EventID = pid },
		}
		return participants.save(ctx, id, f.Participants, f.Delete["participants"])
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("event_id", id).Int("participants", len(f.Participants)).Msg("Event formset saved")
	return nil
}
