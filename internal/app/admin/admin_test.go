package admin

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/app/schema"
	"github.com/yigit/librarium/internal/pkg/apperrors"
)

type statement struct {
	sql  string
	args []any
}

// fakeStore records statements and replays canned results in order
type fakeStore struct {
	statements []statement
	results    [][]map[string]any
	count      int64
	affected   int64
}

func (f *fakeStore) QueryRows(_ context.Context, sql string, args ...any) ([]map[string]any, error) {
	f.statements = append(f.statements, statement{sql, args})
	if len(f.results) == 0 {
		return nil, nil
	}
	rows := f.results[0]
	f.results = f.results[1:]
	return rows, nil
}

func (f *fakeStore) QueryCount(_ context.Context, sql string, args ...any) (int64, error) {
	f.statements = append(f.statements, statement{sql, args})
	return f.count, nil
}

func (f *fakeStore) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	f.statements = append(f.statements, statement{sql, args})
	return f.affected, nil
}

func (f *fakeStore) last() statement {
	return f.statements[len(f.statements)-1]
}

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func newTestSite(t *testing.T, store *fakeStore) *Site {
	t.Helper()
	site, err := NewLibrarySite(store, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("NewLibrarySite: %v", err)
	}
	return site
}

func TestLibrarySiteIndex(t *testing.T) {
	site := newTestSite(t, &fakeStore{})
	index := site.Index()
	if len(index) != 11 {
		t.Fatalf("registered %d models, want 11", len(index))
	}

	for _, info := range index {
		if info.Actions[0].Name != DeleteSelected {
			t.Errorf("%s: first action = %s, want delete_selected", info.Name, info.Actions[0].Name)
		}
		want := DefaultPerPage
		if info.Name == ModelBook {
			want = 10
		}
		if info.PerPage != want {
			t.Errorf("%s: per page = %d, want %d", info.Name, info.PerPage, want)
		}
	}

	author, _ := site.Model(ModelAuthor)
	if len(author.Inlines) != 2 || author.Inlines[0].Style != Stacked {
		t.Errorf("author inlines = %+v", author.Inlines)
	}
}

func TestNewSiteRejectsInvalidConfiguration(t *testing.T) {
	a, b := schema.Authors, schema.Books
	tests := []struct {
		name   string
		admins []*ModelAdmin
		want   string
	}{
		{
			name:   "duplicate model",
			admins: []*ModelAdmin{{Name: "author", Table: a.Table}, {Name: "author", Table: a.Table}},
			want:   "registered twice",
		},
		{
			name:   "list field of another table",
			admins: []*ModelAdmin{{Name: "author", Table: a.Table, ListDisplay: []schema.Field{b.Title}}},
			want:   `list_display field "title" belongs to "books"`,
		},
		{
			name: "action on a traversal field",
			admins: []*ModelAdmin{{Name: "book", Table: b.Table, Actions: []Action{
				{Name: "rename", Set: []Assignment{Set(b.AuthorLastName, "x")}},
			}}},
			want: `cannot set "author__last_name"`,
		},
		{
			name: "action with undeclared choice",
			admins: []*ModelAdmin{{Name: "book", Table: b.Table, Actions: []Action{
				{Name: "poetry", Set: []Assignment{Set(b.Genre, "Poetry")}},
			}}},
			want: "undeclared choice",
		},
		{
			name: "action shadowing delete_selected",
			admins: []*ModelAdmin{{Name: "author", Table: a.Table, Actions: []Action{
				{Name: DeleteSelected, Set: []Assignment{Set(a.Deleted, true)}},
			}}},
			want: "duplicate action",
		},
		{
			name:   "unregistered inline",
			admins: []*ModelAdmin{{Name: "author", Table: a.Table, Inlines: []Inline{{Model: "book", FK: b.Author}}}},
			want:   `inline model "book" is not registered`,
		},
		{
			name: "inline key pointing elsewhere",
			admins: []*ModelAdmin{
				{Name: "author", Table: a.Table, Inlines: []Inline{{Model: "book", FK: b.Category}}},
				{Name: "book", Table: b.Table},
			},
			want: "must use a foreign key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSite(&fakeStore{}, tt.admins)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("NewSite() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestChangeListBookDefaults(t *testing.T) {
	store := &fakeStore{count: 25, results: [][]map[string]any{{
		{"id": int64(1), "title": "The Hobbit", "publishing_date": time.Date(1937, time.September, 21, 0, 0, 0, 0, time.UTC)},
	}}}
	site := newTestSite(t, store)

	cl, err := site.ChangeList(context.Background(), ModelBook, url.Values{"page": {"3"}})
	if err != nil {
		t.Fatalf("ChangeList: %v", err)
	}

	if len(store.statements) != 2 {
		t.Fatalf("expected a count and a select, got %d statements", len(store.statements))
	}
	count := store.statements[0].sql
	if count != "SELECT COUNT(*) FROM books LEFT JOIN authors AS author ON author.id = books.author_id" {
		t.Errorf("count sql = %s", count)
	}

	rows := store.statements[1].sql
	for _, want := range []string{
		`books.title AS "title"`,
		`books.author_id AS "author_id"`,
		"ORDER BY books.publishing_date DESC, books.id ASC",
		"LIMIT 10 OFFSET 20",
	} {
		if !strings.Contains(rows, want) {
			t.Errorf("select sql %q does not contain %q", rows, want)
		}
	}

	if cl.Pagination.TotalPages != 3 || cl.Pagination.PageSize != 10 || cl.Pagination.CurrentPage != 3 {
		t.Errorf("pagination = %+v", cl.Pagination)
	}
	if got := cl.Rows[0]["publishing_date"]; got != "1937-09-21" {
		t.Errorf("dates are rendered as YYYY-MM-DD, got %v", got)
	}
	if strings.Join(cl.Ordering, ",") != "-publishing_date,id" {
		t.Errorf("ordering = %v", cl.Ordering)
	}
}

func TestChangeListPagePastTheEnd(t *testing.T) {
	for _, page := range []string{"4", "9223372036854775807"} {
		store := &fakeStore{count: 25}
		site := newTestSite(t, store)

		cl, err := site.ChangeList(context.Background(), ModelBook, url.Values{"page": {page}})
		if err != nil {
			t.Fatalf("page %s: ChangeList: %v", page, err)
		}
		if rows := store.last().sql; !strings.Contains(rows, "LIMIT 10 OFFSET 20") {
			t.Errorf("page %s: select sql %q should read the last page", page, rows)
		}
		if cl.Pagination.CurrentPage != 3 || cl.Pagination.TotalPages != 3 {
			t.Errorf("page %s: pagination = %+v", page, cl.Pagination)
		}
		if len(cl.Rows) != 0 {
			t.Errorf("page %s: rows = %v", page, cl.Rows)
		}
	}
}

func TestChangeListSearchTraversesAuthor(t *testing.T) {
	store := &fakeStore{}
	site := newTestSite(t, store)

	if _, err := site.ChangeList(context.Background(), ModelBook, url.Values{"q": {"  J.R.R.  Tolkien "}}); err != nil {
		t.Fatalf("ChangeList: %v", err)
	}

	rows := store.last()
	if !strings.Contains(rows.sql, "author.last_name::text ILIKE $") {
		t.Errorf("search does not reach the author's last name: %s", rows.sql)
	}
	if strings.Count(rows.sql, " OR ") != 6 || strings.Count(rows.sql, ") AND (") != 1 {
		t.Errorf("every term must match at least one of four fields: %s", rows.sql)
	}

	want := []any{"%J.R.R.%", "%J.R.R.%", "%J.R.R.%", "%J.R.R.%", "%Tolkien%", "%Tolkien%", "%Tolkien%", "%Tolkien%"}
	if !reflect.DeepEqual(rows.args, want) {
		t.Errorf("args = %v, want %v", rows.args, want)
	}
}

func TestChangeListSearchEscapesWildcards(t *testing.T) {
	store := &fakeStore{}
	site := newTestSite(t, store)

	if _, err := site.ChangeList(context.Background(), ModelCategory, url.Values{"q": {"100%_done"}}); err != nil {
		t.Fatal(err)
	}
	if got := store.last().args[0]; got != `%100\%\_done%` {
		t.Errorf("pattern = %v", got)
	}
}

func TestChangeListFilters(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		params   url.Values
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "boolean",
			model:    ModelBorrow,
			params:   url.Values{"returned": {"true"}},
			wantSQL:  "WHERE (borrows.returned = $1)",
			wantArgs: []any{true},
		},
		{
			name:     "choice",
			model:    ModelBook,
			params:   url.Values{"genre": {"Fantasy"}},
			wantSQL:  "WHERE (books.genre = $1)",
			wantArgs: []any{"Fantasy"},
		},
		{
			name:     "foreign key",
			model:    ModelPost,
			params:   url.Values{"library": {"4"}},
			wantSQL:  "WHERE (posts.library_id = $1)",
			wantArgs: []any{int64(4)},
		},
		{
			name:     "date this month",
			model:    ModelBorrow,
			params:   url.Values{"borrow_date": {"this_month"}},
			wantSQL:  "WHERE ((borrows.borrow_date >= $1 AND borrows.borrow_date < $2))",
			wantArgs: []any{models.NewDate(2024, time.June, 1), models.NewDate(2024, time.July, 1)},
		},
		{
			name:     "exact date",
			model:    ModelEventParticipant,
			params:   url.Values{"registration_date": {"2024-02-29"}},
			wantSQL:  "registration_date < $2",
			wantArgs: []any{models.NewDate(2024, time.February, 29), models.NewDate(2024, time.March, 1)},
		},
		{
			name:     "timestamp today",
			model:    ModelEvent,
			params:   url.Values{"date": {"today"}},
			wantSQL:  "events.date >= $1",
			wantArgs: []any{time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)},
		},
		{
			name:     "filters are combined in name order",
			model:    ModelMember,
			params:   url.Values{"role": {"Staff"}, "active": {"false"}},
			wantSQL:  "WHERE (members.active = $1 AND members.role = $2)",
			wantArgs: []any{false, "Staff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			site := newTestSite(t, store)
			if _, err := site.ChangeList(context.Background(), tt.model, tt.params); err != nil {
				t.Fatalf("ChangeList: %v", err)
			}
			count := store.statements[0]
			if !strings.Contains(count.sql, tt.wantSQL) {
				t.Errorf("sql = %s, want it to contain %s", count.sql, tt.wantSQL)
			}
			if !reflect.DeepEqual(count.args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", count.args, tt.wantArgs)
			}
		})
	}
}

func TestChangeListRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		model     string
		params    url.Values
		wantField string
	}{
		{name: "undeclared genre", model: ModelBook, params: url.Values{"genre": {"Poetry"}}, wantField: "genre"},
		{name: "non boolean", model: ModelBorrow, params: url.Values{"returned": {"maybe"}}, wantField: "returned"},
		{name: "bad date", model: ModelBorrow, params: url.Values{"return_date": {"yesterday"}}, wantField: "return_date"},
		{name: "field that is not a filter", model: ModelBook, params: url.Values{"title": {"Dune"}}, wantField: "title"},
		{name: "unsortable field", model: ModelBook, params: url.Values{"o": {"summary"}}, wantField: "o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			site := newTestSite(t, store)
			_, err := site.ChangeList(context.Background(), tt.model, tt.params)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("ChangeList() = %v, want a validation error", err)
			}
			if field, _ := apperrors.FieldOf(err); field != tt.wantField {
				t.Fatalf("field = %q, want %q", field, tt.wantField)
			}
			if len(store.statements) != 0 {
				t.Fatalf("no statement may run for invalid parameters")
			}
		})
	}
}

func TestChangeListOrderingParameter(t *testing.T) {
	store := &fakeStore{}
	site := newTestSite(t, store)

	cl, err := site.ChangeList(context.Background(), ModelMember, url.Values{"o": {"-email,first_name"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(store.last().sql, "ORDER BY members.email DESC, members.first_name ASC, members.id ASC") {
		t.Errorf("sql = %s", store.last().sql)
	}
	if strings.Join(cl.Ordering, ",") != "-email,first_name,id" {
		t.Errorf("ordering = %v", cl.Ordering)
	}
}

func TestChangeListUnknownModel(t *testing.T) {
	site := newTestSite(t, &fakeStore{})
	if _, err := site.ChangeList(context.Background(), "publisher", nil); !errors.Is(err, apperrors.ErrUnknownModel) {
		t.Fatalf("ChangeList() = %v, want ErrUnknownModel", err)
	}
}

func TestChangeViewWithInlines(t *testing.T) {
	store := &fakeStore{results: [][]map[string]any{
		{{"id": int64(1), "first_name": "J.R.R.", "last_name": "Tolkien", "birth_date": time.Date(1892, time.January, 3, 0, 0, 0, 0, time.UTC)}},
		{{"id": int64(9), "author_id": int64(1), "gender": "Male"}},
		{{"id": int64(5), "title": "The Hobbit"}, {"id": int64(6), "title": "The Silmarillion"}},
	}}
	site := newTestSite(t, store)

	view, err := site.ChangeView(context.Background(), ModelAuthor, 1)
	if err != nil {
		t.Fatalf("ChangeView: %v", err)
	}
	if view.Record["birth_date"] != "1892-01-03" {
		t.Errorf("record = %v", view.Record)
	}
	if len(view.Inlines) != 2 || len(view.Inlines[0].Rows) != 1 || len(view.Inlines[1].Rows) != 2 {
		t.Fatalf("inlines = %+v", view.Inlines)
	}

	detail := store.statements[1]
	if !strings.Contains(detail.sql, "WHERE author_details.author_id = $1") || !strings.Contains(detail.sql, "LIMIT 1") {
		t.Errorf("detail inline sql = %s", detail.sql)
	}
	books := store.statements[2]
	if !strings.Contains(books.sql, "WHERE books.author_id = $1 ORDER BY books.publishing_date DESC, books.id ASC") {
		t.Errorf("book inline sql = %s", books.sql)
	}
	if !reflect.DeepEqual(books.args, []any{int64(1)}) {
		t.Errorf("book inline args = %v", books.args)
	}
}

func TestChangeViewIncludesDerivedFields(t *testing.T) {
	store := &fakeStore{results: [][]map[string]any{{{"id": int64(2), "rating": 4.0}}}}
	site := newTestSite(t, store)

	view, err := site.ChangeView(context.Background(), ModelBook, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(store.statements[0].sql, `AVG(r.rating)`) {
		t.Errorf("book change view must select the derived rating: %s", store.statements[0].sql)
	}
	if view.Record["rating"] != 4.0 {
		t.Errorf("rating = %v", view.Record["rating"])
	}
}

func TestChangeViewNotFound(t *testing.T) {
	site := newTestSite(t, &fakeStore{})
	if _, err := site.ChangeView(context.Background(), ModelBorrow, 404); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("ChangeView() = %v, want ErrResourceNotFound", err)
	}
}

func TestRunActionActivatesExactlySelection(t *testing.T) {
	store := &fakeStore{affected: 2}
	site := newTestSite(t, store)

	res, err := site.RunAction(context.Background(), ModelMember, "activate_members", []int64{7, 3, 7})
	if err != nil {
		t.Fatalf("RunAction: %v", err)
	}

	stmt := store.last()
	if stmt.sql != "UPDATE members SET active = $1 WHERE id IN ($2,$3)" {
		t.Errorf("sql = %s", stmt.sql)
	}
	if !reflect.DeepEqual(stmt.args, []any{true, int64(3), int64(7)}) {
		t.Errorf("args = %v", stmt.args)
	}
	if res.Selected != 2 || res.Affected != 2 {
		t.Errorf("result = %+v", res)
	}
}

func TestRunActionRoleAssignment(t *testing.T) {
	store := &fakeStore{affected: 1}
	site := newTestSite(t, store)

	if _, err := site.RunAction(context.Background(), ModelMember, "assign_role_to_staff", []int64{1}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(store.last().args, []any{"Staff", int64(1)}) {
		t.Errorf("args = %v", store.last().args)
	}
}

func TestRunActionDeleteSelected(t *testing.T) {
	store := &fakeStore{affected: 1}
	site := newTestSite(t, store)

	if _, err := site.RunAction(context.Background(), ModelCategory, DeleteSelected, []int64{5}); err != nil {
		t.Fatal(err)
	}
	if got := store.last().sql; got != "DELETE FROM categories WHERE id IN ($1)" {
		t.Errorf("sql = %s", got)
	}
}

func TestRunActionErrors(t *testing.T) {
	store := &fakeStore{}
	site := newTestSite(t, store)
	ctx := context.Background()

	_, err := site.RunAction(ctx, ModelBorrow, "mark_borrows_returned", nil)
	if !errors.Is(err, apperrors.ErrNoSelection) || !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("empty selection = %v", err)
	}

	if _, err := site.RunAction(ctx, ModelBorrow, "mark_borrows_returned", []int64{0}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("invalid id = %v", err)
	}

	if _, err := site.RunAction(ctx, ModelBook, "mark_authors_deleted", []int64{1}); !errors.Is(err, apperrors.ErrUnknownAction) {
		t.Errorf("action of another model = %v", err)
	}

	if len(store.statements) != 0 {
		t.Errorf("rejected actions must not touch the store")
	}
}
