package schema

import "github.com/yigit/librarium/internal/app/models"

// AuthorTable describes authors
type AuthorTable struct {
	Table
	ID, FirstName, LastName, BirthDate, Profile, Deleted, Rating Field
}

// AuthorDetailTable describes author_details
type AuthorDetailTable struct {
	Table
	ID, Author, Biography, BirthCity, Gender Field
	AuthorFirstName, AuthorLastName          Field
}

// CategoryTable describes categories
type CategoryTable struct {
	Table
	ID, Name Field
}

// LibraryTable describes libraries
type LibraryTable struct {
	Table
	ID, Name, Location, Site Field
}

// MemberTable describes members
type MemberTable struct {
	Table
	ID, FirstName, LastName, Email, Gender, BirthDate, Age, Role, Active Field
}

// BookTable describes books
type BookTable struct {
	Table
	ID, Title, Author, PublishingDate, Genre, Summary, Pages, Category Field
	Rating                                                             Field
	AuthorFirstName, AuthorLastName                                    Field
}

// ReviewTable describes reviews
type ReviewTable struct {
	Table
	ID, Book, Reviewer, Rating, Description        Field
	BookTitle, ReviewerFirstName, ReviewerLastName Field
}

// BorrowTable describes borrows
type BorrowTable struct {
	Table
	ID, Member, Book, Library, BorrowDate, ReturnDate, Returned Field
	IsOverdue                                                   Field
	MemberFirstName, MemberLastName, BookTitle, LibraryName     Field
}

// PostTable describes posts
type PostTable struct {
	Table
	ID, Title, Body, Moderated, CreatedAt, UpdatedAt, Author, Library Field
	AuthorFirstName, AuthorLastName                                   Field
}

// EventTable describes events
type EventTable struct {
	Table
	ID, Title, Description, Date, Library Field
	LibraryName                           Field
}

// EventParticipantTable describes event_participants
type EventParticipantTable struct {
	Table
	ID, Event, Member, RegistrationDate         Field
	EventTitle, MemberFirstName, MemberLastName Field
}

var Authors = func() AuthorTable {
	const t = "authors"
	a := AuthorTable{
		Table:     Table{Name: t, Label: "Author", Plural: "Authors"},
		ID:        column(t, "id", "ID", Int),
		FirstName: column(t, "first_name", "First name", Text),
		LastName:  column(t, "last_name", "Last name", Text),
		BirthDate: column(t, "birth_date", "Birth date", Date),
		Profile:   column(t, "profile", "Profile", Text),
		Deleted:   column(t, "deleted", "Deleted", Bool),
		Rating:    column(t, "rating", "Rating", Int),
	}
	a.Columns = []Field{a.ID, a.FirstName, a.LastName, a.BirthDate, a.Profile, a.Deleted, a.Rating}
	return a
}()

var AuthorDetails = func() AuthorDetailTable {
	const t = "author_details"
	d := AuthorDetailTable{
		Table:     Table{Name: t, Label: "Author detail", Plural: "Author details"},
		ID:        column(t, "id", "ID", Int),
		Author:    foreignKey(t, "author", "Author", Authors.Table.Name, personName),
		Biography: column(t, "biography", "Biography", Text),
		BirthCity: column(t, "birth_city", "Birth city", Text),
		Gender:    choice(t, "gender", "Gender", models.Strings(models.Genders)),
	}
	d.AuthorFirstName = related(d.Author, "first_name", "Author first name", Text)
	d.AuthorLastName = related(d.Author, "last_name", "Author last name", Text)
	d.Columns = []Field{d.ID, d.Author, d.Biography, d.BirthCity, d.Gender}
	return d
}()

var Categories = func() CategoryTable {
	const t = "categories"
	c := CategoryTable{
		Table: Table{Name: t, Label: "Category", Plural: "Categories"},
		ID:    column(t, "id", "ID", Int),
		Name:  column(t, "name", "Name", Text),
	}
	c.Columns = []Field{c.ID, c.Name}
	return c
}()

var Libraries = func() LibraryTable {
	const t = "libraries"
	l := LibraryTable{
		Table:    Table{Name: t, Label: "Library", Plural: "Libraries"},
		ID:       column(t, "id", "ID", Int),
		Name:     column(t, "name", "Name", Text),
		Location: column(t, "location", "Location", Text),
		Site:     column(t, "site", "Site", Text),
	}
	l.Columns = []Field{l.ID, l.Name, l.Location, l.Site}
	return l
}()

var Members = func() MemberTable {
	const t = "members"
	m := MemberTable{
		Table:     Table{Name: t, Label: "Member", Plural: "Members"},
		ID:        column(t, "id", "ID", Int),
		FirstName: column(t, "first_name", "First name", Text),
		LastName:  column(t, "last_name", "Last name", Text),
		Email:     column(t, "email", "Email", Text),
		Gender:    choice(t, "gender", "Gender", models.Strings(models.Genders)),
		BirthDate: column(t, "birth_date", "Birth date", Date),
		Age:       column(t, "age", "Age", Int),
		Role:      choice(t, "role", "Role", models.Strings(models.Roles)),
		Active:    column(t, "active", "Active", Bool),
	}
	m.Columns = []Field{m.ID, m.FirstName, m.LastName, m.Email, m.Gender, m.BirthDate, m.Age, m.Role, m.Active}
	return m
}()

var Books = func() BookTable {
	const t = "books"
	b := BookTable{
		Table:          Table{Name: t, Label: "Book", Plural: "Books"},
		ID:             column(t, "id", "ID", Int),
		Title:          column(t, "title", "Title", Text),
		Author:         foreignKey(t, "author", "Author", Authors.Table.Name, personName),
		PublishingDate: column(t, "publishing_date", "Publishing date", Date),
		Genre:          choice(t, "genre", "Genre", models.Strings(models.Genres)),
		Summary:        column(t, "summary", "Summary", Text),
		Pages:          column(t, "pages", "Pages", Int),
		Category:       foreignKey(t, "category", "Category", Categories.Table.Name, "$.name"),
		Rating: derived(t, "rating", "Rating",
			"COALESCE((SELECT ROUND(AVG(r.rating)::numeric, 2) FROM reviews r WHERE r.book_id = books.id), 0)::float8", Float),
	}
	b.AuthorFirstName = related(b.Author, "first_name", "Author first name", Text)
	b.AuthorLastName = related(b.Author, "last_name", "Author last name", Text)
	b.Columns = []Field{b.ID, b.Title, b.Author, b.PublishingDate, b.Genre, b.Summary, b.Pages, b.Category, b.Rating}
	return b
}()

var Reviews = func() ReviewTable {
	const t = "reviews"
	r := ReviewTable{
		Table:       Table{Name: t, Label: "Review", Plural: "Reviews"},
		ID:          column(t, "id", "ID", Int),
		Book:        foreignKey(t, "book", "Book", Books.Table.Name, "$.title"),
		Reviewer:    foreignKey(t, "reviewer", "Reviewer", Members.Table.Name, personName),
		Rating:      column(t, "rating", "Rating", Float),
		Description: column(t, "description", "Description", Text),
	}
	r.BookTitle = related(r.Book, "title", "Book title", Text)
	r.ReviewerFirstName = related(r.Reviewer, "first_name", "Reviewer first name", Text)
	r.ReviewerLastName = related(r.Reviewer, "last_name", "Reviewer last name", Text)
	r.Columns = []Field{r.ID, r.Book, r.Reviewer, r.Rating, r.Description}
	return r
}()

var Borrows = func() BorrowTable {
	const t = "borrows"
	b := BorrowTable{
		Table:      Table{Name: t, Label: "Borrow", Plural: "Borrows"},
		ID:         column(t, "id", "ID", Int),
		Member:     foreignKey(t, "member", "Member", Members.Table.Name, personName),
		Book:       foreignKey(t, "book", "Book", Books.Table.Name, "$.title"),
		Library:    foreignKey(t, "library", "Library", Libraries.Table.Name, "$.name"),
		BorrowDate: column(t, "borrow_date", "Borrow date", Date),
		ReturnDate: column(t, "return_date", "Return date", Date),
		Returned:   column(t, "returned", "Returned", Bool),
		IsOverdue: derived(t, "is_overdue", "Is overdue",
			"(NOT borrows.returned AND borrows.return_date < CURRENT_DATE)", Bool),
	}
	b.MemberFirstName = related(b.Member, "first_name", "Member first name", Text)
	b.MemberLastName = related(b.Member, "last_name", "Member last name", Text)
	b.BookTitle = related(b.Book, "title", "Book title", Text)
	b.LibraryName = related(b.Library, "name", "Library name", Text)
	b.Columns = []Field{b.ID, b.Member, b.Book, b.Library, b.BorrowDate, b.ReturnDate, b.Returned, b.IsOverdue}
	return b
}()

var Posts = func() PostTable {
	const t = "posts"
	p := PostTable{
		Table:     Table{Name: t, Label: "Post", Plural: "Posts"},
		ID:        column(t, "id", "ID", Int),
		Title:     column(t, "title", "Title", Text),
		Body:      column(t, "body", "Body", Text),
		Moderated: column(t, "moderated", "Moderated", Bool),
		CreatedAt: column(t, "created_at", "Created at", DateTime),
		UpdatedAt: column(t, "updated_at", "Updated at", DateTime),
		Author:    foreignKey(t, "author", "Author", Members.Table.Name, personName),
		Library:   foreignKey(t, "library", "Library", Libraries.Table.Name, "$.name"),
	}
	p.AuthorFirstName = related(p.Author, "first_name", "Author first name", Text)
	p.AuthorLastName = related(p.Author, "last_name", "Author last name", Text)
	p.Columns = []Field{p.ID, p.Title, p.Body, p.Moderated, p.CreatedAt, p.UpdatedAt, p.Author, p.Library}
	return p
}()

var Events = func() EventTable {
	const t = "events"
	e := EventTable{
		Table:       Table{Name: t, Label: "Event", Plural: "Events"},
		ID:          column(t, "id", "ID", Int),
		Title:       column(t, "title", "Title", Text),
		Description: column(t, "description", "Description", Text),
		Date:        column(t, "date", "Date", DateTime),
		Library:     foreignKey(t, "library", "Library", Libraries.Table.Name, "$.name"),
	}
	e.LibraryName = related(e.Library, "name", "Library name", Text)
	e.Columns = []Field{e.ID, e.Title, e.Description, e.Date, e.Library}
	return e
}()

var EventParticipants = func() EventParticipantTable {
	const t = "event_participants"
	p := EventParticipantTable{
		Table:            Table{Name: t, Label: "Event participant", Plural: "Event participants"},
		ID:               column(t, "id", "ID", Int),
		Event:            foreignKey(t, "event", "Event", Events.Table.Name, "$.title"),
		Member:           foreignKey(t, "member", "Member", Members.Table.Name, personName),
		RegistrationDate: column(t, "registration_date", "Registration date", Date),
	}
	p.EventTitle = related(p.Event, "title", "Event title", Text)
	p.MemberFirstName = related(p.Member, "first_name", "Member first name", Text)
	p.MemberLastName = related(p.Member, "last_name", "Member last name", Text)
	p.Columns = []Field{p.ID, p.Event, p.Member, p.RegistrationDate}
	return p
}()
