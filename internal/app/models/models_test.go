package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/validation"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{name: "no reviews", ratings: nil, want: 0},
		{name: "whole mean", ratings: []float64{4, 5, 3}, want: 4.0},
		{name: "rounded to two decimals", ratings: []float64{5, 4, 4}, want: 4.33},
		{name: "fractional ratings", ratings: []float64{4.5, 3.25}, want: 3.88},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageRating(tt.ratings); got != tt.want {
				t.Fatalf("AverageRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestBorrowIsOverdue(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		borrow   Borrow
		expected bool
	}{
		{name: "returned in the past", borrow: Borrow{ReturnDate: NewDate(2024, time.June, 1), Returned: true}, expected: false},
		{name: "returned in the future", borrow: Borrow{ReturnDate: NewDate(2024, time.July, 1), Returned: true}, expected: false},
		{name: "outstanding past due", borrow: Borrow{ReturnDate: NewDate(2024, time.June, 9)}, expected: true},
		{name: "outstanding due today", borrow: Borrow{ReturnDate: NewDate(2024, time.June, 10)}, expected: false},
		{name: "outstanding future", borrow: Borrow{ReturnDate: NewDate(2024, time.June, 11)}, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.borrow.IsOverdue(now); got != tt.expected {
				t.Fatalf("IsOverdue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBorrowWireKeys(t *testing.T) {
	b := Borrow{ID: 1, MemberID: 2, BookID: 3, LibraryID: 4, ReturnDate: NewDate(2024, time.June, 9), Overdue: true}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]any
	if err := json.Unmarshal(out, &keys); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"member_id", "book_id", "library_id", "borrow_date", "return_date", "is_overdue"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("%s missing from %s", want, out)
		}
	}
	if keys["is_overdue"] != true {
		t.Errorf("is_overdue = %v, want true", keys["is_overdue"])
	}
}

func TestEnumerations(t *testing.T) {
	if !GenreScienceFiction.Valid() || Genre("Poetry").Valid() {
		t.Errorf("unexpected Genre validity")
	}
	if !RoleStaff.Valid() || !RoleReader.Valid() || Role("Admin").Valid() {
		t.Errorf("roles are Staff and Reader only")
	}
	if !GenderOther.Valid() || Gender("").Valid() {
		t.Errorf("unexpected Gender validity")
	}
	if got := Strings(Genders); len(got) != 3 || got[0] != "Male" {
		t.Errorf("Strings(Genders) = %v", got)
	}
}

func TestDateJSON(t *testing.T) {
	var a Author
	if err := json.Unmarshal([]byte(`{"birth_date":"1892-01-03"}`), &a); err != nil {
		t.Fatal(err)
	}
	if a.BirthDate.String() != "1892-01-03" {
		t.Fatalf("BirthDate = %s", a.BirthDate)
	}

	out, err := json.Marshal(struct {
		Set   Date `json:"set"`
		Unset Date `json:"unset"`
	}{Set: NewDate(2024, time.February, 29)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"set":"2024-02-29","unset":null}` {
		t.Fatalf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"birth_date":"03/01/1892"}`), &a); err == nil {
		t.Fatalf("expected an error for a non ISO date")
	}
}

func TestDateDatabaseRoundTrip(t *testing.T) {
	d := NewDate(2023, time.December, 31)
	v, err := d.DateValue()
	if err != nil || !v.Valid {
		t.Fatalf("DateValue() = %+v, %v", v, err)
	}
	var back Date
	if err := back.ScanDate(v); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip = %s, want %s", back, d)
	}

	zero, _ := Date{}.DateValue()
	if zero.Valid {
		t.Fatalf("zero date must be stored as NULL")
	}
}

func TestDefaults(t *testing.T) {
	if a := NewAuthor(); a.Rating != 1 || a.Deleted {
		t.Errorf("NewAuthor() = %+v", a)
	}
	if m := NewMember(); m.Role != RoleReader || !m.Active {
		t.Errorf("NewMember() = %+v", m)
	}
	now := time.Date(2024, time.May, 2, 23, 0, 0, 0, time.UTC)
	if p := NewEventParticipant(now); p.RegistrationDate.String() != "2024-05-02" {
		t.Errorf("registration date = %s", p.RegistrationDate)
	}
}

func validAuthor() *Author {
	a := NewAuthor()
	a.FirstName = "Ursula"
	a.LastName = "Le Guin"
	a.BirthDate = NewDate(1929, time.October, 21)
	return a
}

func TestAuthorRatingBounds(t *testing.T) {
	for _, rating := range []int{0, 11, -3} {
		a := validAuthor()
		a.Rating = rating
		err := validation.Struct(a)
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("rating %d: expected validation failure, got %v", rating, err)
		}
		if field, _ := apperrors.FieldOf(err); field != "rating" {
			t.Fatalf("rating %d: field = %q", rating, field)
		}
	}
	for _, rating := range []int{1, 10} {
		a := validAuthor()
		a.Rating = rating
		if err := validation.Struct(a); err != nil {
			t.Fatalf("rating %d: %v", rating, err)
		}
	}
}

func TestMemberValidation(t *testing.T) {
	valid := func() *Member {
		m := NewMember()
		m.FirstName, m.LastName, m.Email = "Ann", "Lee", "ann@example.com"
		m.Gender = GenderFemale
		m.BirthDate = NewDate(2000, time.January, 1)
		m.Age = 24
		return m
	}

	for _, age := range []int{5, 121} {
		m := valid()
		m.Age = age
		if field, _ := apperrors.FieldOf(validation.Struct(m)); field != "age" {
			t.Errorf("age %d should fail on age, got field %q", age, field)
		}
	}
	for _, age := range []int{6, 120} {
		m := valid()
		m.Age = age
		if err := validation.Struct(m); err != nil {
			t.Errorf("age %d: %v", age, err)
		}
	}

	m := valid()
	m.Role = "Admin"
	if field, _ := apperrors.FieldOf(validation.Struct(m)); field != "role" {
		t.Errorf("role Admin should be rejected, got field %q", field)
	}

	m = valid()
	m.Email = "not-an-email"
	if field, _ := apperrors.FieldOf(validation.Struct(m)); field != "email" {
		t.Errorf("bad email should be rejected, got field %q", field)
	}

	m = valid()
	m.BirthDate = Date{}
	if field, _ := apperrors.FieldOf(validation.Struct(m)); field != "birth_date" {
		t.Errorf("missing birth date should be rejected, got field %q", field)
	}
}

func TestBookValidation(t *testing.T) {
	b := &Book{Title: "Dune", PublishingDate: NewDate(1965, time.August, 1), Genre: GenreScienceFiction, Pages: 10000}
	if err := validation.Struct(b); err != nil {
		t.Fatalf("valid book rejected: %v", err)
	}
	b.Pages = 10001
	if field, _ := apperrors.FieldOf(validation.Struct(b)); field != "pages" {
		t.Fatalf("pages above 10000 should be rejected, got %q", field)
	}
	b.Pages = 100
	b.Genre = "Poetry"
	if field, _ := apperrors.FieldOf(validation.Struct(b)); field != "genre" {
		t.Fatalf("unknown genre should be rejected, got %q", field)
	}
}

func TestReviewRatingBounds(t *testing.T) {
	r := &Review{BookID: 1, ReviewerID: 1, Rating: 4.5}
	if err := validation.Struct(r); err != nil {
		t.Fatalf("fractional rating rejected: %v", err)
	}
	for _, rating := range []float64{0.99, 5.01} {
		r.Rating = rating
		if field, _ := apperrors.FieldOf(validation.Struct(r)); field != "rating" {
			t.Errorf("rating %v should be rejected, got %q", rating, field)
		}
	}
}
