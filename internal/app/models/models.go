package models

import (
	"reflect"

	"github.com/yigit/librarium/internal/pkg/validation"
)

// Genre is the literary genre of a book
type Genre string

const (
	GenreFiction        Genre = "Fiction"
	GenreNonFiction     Genre = "Non-Fiction"
	GenreScienceFiction Genre = "Science Fiction"
	GenreFantasy        Genre = "Fantasy"
	GenreMystery        Genre = "Mystery"
	GenreBiography      Genre = "Biography"
)

// Genres lists every Genre in display order
var Genres = []Genre{GenreFiction, GenreNonFiction, GenreScienceFiction, GenreFantasy, GenreMystery, GenreBiography}

// Valid reports whether g is a declared genre
func (g Genre) Valid() bool {
	return contains(Genres, g)
}

// Gender is shared by members and author details
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists every Gender in display order
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is a declared gender
func (g Gender) Valid() bool {
	return contains(Genders, g)
}

// Role is a member's role within the library network
type Role string

const (
	RoleStaff  Role = "Staff"
	RoleReader Role = "Reader"
)

// Roles lists every Role in display order
var Roles = []Role{RoleStaff, RoleReader}

// Valid reports whether r is a declared role
func (r Role) Valid() bool {
	return contains(Roles, r)
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Strings converts enumeration values to plain strings
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func init() {
	// Dates are validated as their underlying time; a zero date counts as missing.
	validation.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, Date{})
}
