package models

import "time"

// Event is a scheduled happening at a library
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	LibraryID   int64     `json:"library_id" validate:"gt=0"`
}

// EventParticipant registers a member for an event
type EventParticipant struct {
	ID               int64 `json:"id"`
	EventID          int64 `json:"event_id" validate:"gt=0"`
	MemberID         int64 `json:"member_id" validate:"gt=0"`
	RegistrationDate Date  `json:"registration_date" validate:"required"`
}

// NewEventParticipant returns a participant registered on the day of now
func NewEventParticipant(now time.Time) *EventParticipant {
	return &EventParticipant{RegistrationDate: DateOf(now)}
}
