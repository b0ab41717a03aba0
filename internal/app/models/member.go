package models

// Member is a registered library user
type Member struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Gender    Gender `json:"gender" validate:"choice"`
	BirthDate Date   `json:"birth_date" validate:"required"`
	Age       int    `json:"age" validate:"gte=6,lte=120"`
	Role      Role   `json:"role" validate:"choice"`
	Active    bool   `json:"active"`
}

// NewMember returns a member carrying the column defaults
func NewMember() *Member {
	return &Member{Role: RoleReader, Active: true}
}

func (m *Member) String() string {
	return m.FirstName + " " + m.LastName
}
