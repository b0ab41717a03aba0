package models

import "time"

// Post is a message a member publishes on a library's board
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title" validate:"required,max=200"`
	Body      string    `json:"body"`
	Moderated bool      `json:"moderated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  int64     `json:"author_id" validate:"gt=0"`
	LibraryID int64     `json:"library_id" validate:"gt=0"`
}
