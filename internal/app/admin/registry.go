package admin

import (
	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/app/schema"
	"github.com/yigit/librarium/internal/pkg/logger"
)

// Registered model names
const (
	ModelAuthor           = "author"
	ModelAuthorDetail     = "authordetail"
	ModelBook             = "book"
	ModelCategory         = "category"
	ModelLibrary          = "library"
	ModelMember           = "member"
	ModelPost             = "post"
	ModelBorrow           = "borrow"
	ModelReview           = "review"
	ModelEvent            = "event"
	ModelEventParticipant = "eventparticipant"
)

// LibraryModelAdmins is the console configuration of every library model
func LibraryModelAdmins() []*ModelAdmin {
	a, d, c, l := schema.Authors, schema.AuthorDetails, schema.Categories, schema.Libraries
	m, b, r, br := schema.Members, schema.Books, schema.Reviews, schema.Borrows
	p, e, ep := schema.Posts, schema.Events, schema.EventParticipants

	return []*ModelAdmin{
		{
			Name:         ModelAuthor,
			Table:        a.Table,
			ListDisplay:  []schema.Field{a.FirstName, a.LastName, a.BirthDate, a.Rating, a.Deleted},
			SearchFields: []schema.Field{a.FirstName, a.LastName},
			Ordering:     []Order{Asc(a.LastName), Asc(a.FirstName)},
			Inlines: []Inline{
				{Model: ModelAuthorDetail, FK: d.Author, Style: Stacked, Max: 1},
				{Model: ModelBook, FK: b.Author, Style: Tabular},
			},
			Actions: []Action{
				{Name: "mark_authors_deleted", Description: "Mark selected authors as deleted", Set: []Assignment{Set(a.Deleted, true)}},
				{Name: "unmark_authors_deleted", Description: "Unmark selected authors as deleted", Set: []Assignment{Set(a.Deleted, false)}},
			},
		},
		{
			Name:         ModelBook,
			Table:        b.Table,
			ListDisplay:  []schema.Field{b.Title, b.Author, b.PublishingDate, b.Genre},
			SearchFields: []schema.Field{b.Title, b.AuthorFirstName, b.AuthorLastName, b.Genre},
			ListFilter:   []schema.Field{b.Genre, b.PublishingDate},
			Ordering:     []Order{Desc(b.PublishingDate)},
			PerPage:      10,
		},
		{
			Name:         ModelCategory,
			Table:        c.Table,
			ListDisplay:  []schema.Field{c.Name},
			SearchFields: []schema.Field{c.Name},
			Ordering:     []Order{Asc(c.Name)},
		},
		{
			Name:         ModelLibrary,
			Table:        l.Table,
			ListDisplay:  []schema.Field{l.Name, l.Location, l.Site},
			SearchFields: []schema.Field{l.Name, l.Location},
			ListFilter:   []schema.Field{l.Location},
			Ordering:     []Order{Asc(l.Name)},
			Inlines: []Inline{
				{Model: ModelEvent, FK: e.Library, Style: Tabular},
			},
		},
		{
			Name:         ModelMember,
			Table:        m.Table,
			ListDisplay:  []schema.Field{m.FirstName, m.LastName, m.Email, m.Role, m.Active},
			SearchFields: []schema.Field{m.FirstName, m.LastName, m.Email},
			ListFilter:   []schema.Field{m.Role, m.Active},
			Ordering:     []Order{Asc(m.LastName), Asc(m.FirstName)},
			Inlines: []Inline{
				{Model: ModelPost, FK: p.Author, Style: Tabular},
				{Model: ModelBorrow, FK: br.Member, Style: Tabular},
				{Model: ModelReview, FK: r.Reviewer, Style: Tabular},
			},
			Actions: []Action{
				{Name: "activate_members", Description: "Activate selected members", Set: []Assignment{Set(m.Active, true)}},
				{Name: "deactivate_members", Description: "Deactivate selected members", Set: []Assignment{Set(m.Active, false)}},
				{Name: "assign_role_to_reader", Description: "Assign role 'Reader' to selected members", Set: []Assignment{Set(m.Role, string(models.RoleReader))}},
				{Name: "assign_role_to_staff", Description: "Assign role 'Staff' to selected members", Set: []Assignment{Set(m.Role, string(models.RoleStaff))}},
			},
		},
		{
			Name:         ModelPost,
			Table:        p.Table,
			ListDisplay:  []schema.Field{p.Title, p.Author, p.CreatedAt, p.UpdatedAt, p.Library},
			SearchFields: []schema.Field{p.Title, p.AuthorFirstName, p.AuthorLastName},
			ListFilter:   []schema.Field{p.Library, p.CreatedAt},
			Ordering:     []Order{Desc(p.CreatedAt)},
		},
		{
			Name:         ModelBorrow,
			Table:        br.Table,
			ListDisplay:  []schema.Field{br.Member, br.Book, br.Library, br.BorrowDate, br.ReturnDate, br.Returned, br.IsOverdue},
			SearchFields: []schema.Field{br.MemberFirstName, br.MemberLastName, br.BookTitle, br.LibraryName},
			ListFilter:   []schema.Field{br.Returned, br.BorrowDate, br.ReturnDate},
			Ordering:     []Order{Desc(br.BorrowDate)},
			Actions: []Action{
				{Name: "mark_borrows_returned", Description: "Mark selected borrows as returned", Set: []Assignment{Set(br.Returned, true)}},
			},
		},
		{
			Name:         ModelReview,
			Table:        r.Table,
			ListDisplay:  []schema.Field{r.Book, r.Reviewer, r.Rating},
			SearchFields: []schema.Field{r.BookTitle, r.ReviewerFirstName, r.ReviewerLastName},
			ListFilter:   []schema.Field{r.Rating},
			Ordering:     []Order{Desc(r.Rating)},
		},
		{
			Name:         ModelAuthorDetail,
			Table:        d.Table,
			ListDisplay:  []schema.Field{d.Author, d.Gender, d.BirthCity},
			SearchFields: []schema.Field{d.AuthorFirstName, d.AuthorLastName, d.BirthCity},
			Ordering:     []Order{Asc(d.AuthorLastName)},
		},
		{
			Name:         ModelEvent,
			Table:        e.Table,
			ListDisplay:  []schema.Field{e.Title, e.Date, e.Library},
			SearchFields: []schema.Field{e.Title, e.LibraryName},
			ListFilter:   []schema.Field{e.Date, e.Library},
			Ordering:     []Order{Desc(e.Date)},
			Inlines: []Inline{
				{Model: ModelEventParticipant, FK: ep.Event, Style: Tabular},
			},
		},
		{
			Name:         ModelEventParticipant,
			Table:        ep.Table,
			ListDisplay:  []schema.Field{ep.Event, ep.Member, ep.RegistrationDate},
			SearchFields: []schema.Field{ep.EventTitle, ep.MemberFirstName, ep.MemberLastName},
			ListFilter:   []schema.Field{ep.RegistrationDate},
			Ordering:     []Order{Desc(ep.RegistrationDate)},
		},
	}
}

// NewLibrarySite builds the console for the library models
func NewLibrarySite(store Store, opts ...Option) (*Site, error) {
	site, err := NewSite(store, LibraryModelAdmins(), opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("models", len(site.order)).Msg("Console site registered")
	return site, nil
}
