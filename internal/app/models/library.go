package models

// Library is a branch of the library network
type Library struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name" validate:"required,max=200"`
	Location string  `json:"location" validate:"required,max=200"`
	Site     *string `json:"site" validate:"omitempty,url,max=200"`
}
