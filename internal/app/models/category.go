package models

// Category groups books
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=100"`
}
