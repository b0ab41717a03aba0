package models

// Author writes books. Deleted is a soft-delete flag; the row stays.
type Author struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	BirthDate Date    `json:"birth_date" validate:"required"`
	Profile   *string `json:"profile" validate:"omitempty,url,max=200"`
	Deleted   bool    `json:"deleted"`
	Rating    int     `json:"rating" validate:"gte=1,lte=10"`
}

// NewAuthor returns an author carrying the column defaults
func NewAuthor() *Author {
	return &Author{Rating: 1}
}

func (a *Author) String() string {
	return a.FirstName + " " + a.LastName
}

// AuthorDetail holds the one-to-one biography of an author
type AuthorDetail struct {
	ID        int64  `json:"id"`
	AuthorID  int64  `json:"author_id" validate:"gt=0"`
	Biography string `json:"biography"`
	BirthCity string `json:"birth_city" validate:"max=100"`
	Gender    Gender `json:"gender" validate:"choice"`
}
