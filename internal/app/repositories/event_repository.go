package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/db"
)

// EventRepository handles database operations for events and their books
type EventRepository struct {
	db db.Querier
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db db.Querier) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	query, args, err := psql.Insert("events").
		Columns("title", "description", "date", "library_id").
		Values(e.Title, e.Description, e.Date, e.LibraryID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building event insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("error creating event: %w", translate(err, eventConstraints))
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query, args, err := psql.Select("id", "title", "description", "date", "library_id").
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var e models.Event
	if err := r.db.QueryRow(ctx, query, args...).Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.LibraryID); err != nil {
		return nil, notFound(err, "event %d not found", id)
	}
	return &e, nil
}

// ExistsByTitleDate checks whether another event has the same title and time
func (r *EventRepository) ExistsByTitleDate(ctx context.Context, title string, date time.Time, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("events").Where(squirrel.Eq{"title": title, "date": date})
	return exists(ctx, r.db, excluding(sub, excludeID))
}

// Update writes every column of an existing event
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	stmt := psql.Update("events").
		Set("title", e.Title).
		Set("description", e.Description).
		Set("date", e.Date).
		Set("library_id", e.LibraryID).
		Where(squirrel.Eq{"id": e.ID})
	return execOne(ctx, r.db, stmt, eventConstraints, "event", e.ID)
}

// Delete removes an event with its participants
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("events").Where(squirrel.Eq{"id": id}), eventConstraints, "event", id)
}

// BookIDs lists the books featured at an event
func (r *EventRepository) BookIDs(ctx context.Context, id int64) ([]int64, error) {
	return linkedIDs(ctx, r.db, "event_books", "event_id", "book_id", id)
}

// SetBooks replaces the books featured at an event
func (r *EventRepository) SetBooks(ctx context.Context, id int64, bookIDs []int64) error {
	return replaceLinks(ctx, r.db, "event_books", "event_id", "book_id", id, bookIDs, linkConstraints)
}

// EventParticipantRepository handles database operations for event registrations
type EventParticipantRepository struct {
	db db.Querier
}

// NewEventParticipantRepository creates a new EventParticipantRepository
func NewEventParticipantRepository(db db.Querier) *EventParticipantRepository {
	return &EventParticipantRepository{db: db}
}

// Create registers a member for an event
func (r *EventParticipantRepository) Create(ctx context.Context, p *models.EventParticipant) error {
	query, args, err := psql.Insert("event_participants").
		Columns("event_id", "member_id", "registration_date").
		Values(p.EventID, p.MemberID, p.RegistrationDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building event participant insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		return fmt.Errorf("error creating event participant: %w", translate(err, eventParticipantConstraints))
	}
	return nil
}

// GetByID retrieves a registration by ID
func (r *EventParticipantRepository) GetByID(ctx context.Context, id int64) (*models.EventParticipant, error) {
	query, args, err := psql.Select("id", "event_id", "member_id", "registration_date").
		From("event_participants").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.EventParticipant
	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.EventID, &p.MemberID, &p.RegistrationDate); err != nil {
		return nil, notFound(err, "event participant %d not found", id)
	}
	return &p, nil
}

// ExistsByEventMember checks whether the member is already registered
func (r *EventParticipantRepository) ExistsByEventMember(ctx context.Context, eventID, memberID, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("event_participants").Where(squirrel.Eq{"event_id": eventID, "member_id": memberID})
	return exists(ctx, r.db, excluding(sub, excludeID))
}

// Update writes every column of an existing registration
func (r *EventParticipantRepository) Update(ctx context.Context, p *models.EventParticipant) error {
	stmt := psql.Update("event_participants").
		Set("event_id", p.EventID).
		Set("member_id", p.MemberID).
		Set("registration_date", p.RegistrationDate).
		Where(squirrel.Eq{"id": p.ID})
	return execOne(ctx, r.db, stmt, eventParticipantConstraints, "event participant", p.ID)
}

// Delete cancels a registration
func (r *EventParticipantRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, psql.Delete("event_participants").Where(squirrel.Eq{"id": id}), eventParticipantConstraints, "event participant", id)
}
