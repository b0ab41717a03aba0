package schema

import (
	"strings"
	"testing"
)

func allTables() []Table {
	return []Table{
		Authors.Table, AuthorDetails.Table, Categories.Table, Libraries.Table, Members.Table,
		Books.Table, Reviews.Table, Borrows.Table, Posts.Table, Events.Table, EventParticipants.Table,
	}
}

func TestTablesAreConsistent(t *testing.T) {
	for _, table := range allTables() {
		if len(table.Columns) == 0 || table.Columns[0].Name != "id" {
			t.Errorf("%s: first column must be id", table.Name)
		}
		seen := map[string]bool{}
		for _, f := range table.Columns {
			if seen[f.Name] {
				t.Errorf("%s: duplicate field %s", table.Name, f.Name)
			}
			seen[f.Name] = true
			if f.Table != table.Name {
				t.Errorf("%s.%s: owned by %s", table.Name, f.Name, f.Table)
			}
			if f.Expr == "" || f.Label == "" {
				t.Errorf("%s.%s: missing expression or label", table.Name, f.Name)
			}
			if f.Kind == Choice && len(f.Choices) == 0 {
				t.Errorf("%s.%s: choice field without choices", table.Name, f.Name)
			}
		}
	}
}

func TestForeignKey(t *testing.T) {
	author := Books.Author
	if author.Qualified() != "books.author_id" || author.Kind != FK || author.Ref != "authors" {
		t.Fatalf("unexpected foreign key: %+v", author)
	}
	if !author.Writable() {
		t.Fatalf("foreign keys are stored columns")
	}
	if len(author.Joins) != 1 || author.Joins[0].Clause() != "authors AS author ON author.id = books.author_id" {
		t.Fatalf("join = %+v", author.Joins)
	}
	if !strings.Contains(author.Expr, "author.first_name") || strings.Contains(author.Expr, "$") {
		t.Fatalf("display expression = %q", author.Expr)
	}
}

func TestRelatedFields(t *testing.T) {
	f := Books.AuthorLastName
	if f.Name != "author__last_name" || f.Expr != "author.last_name" {
		t.Fatalf("unexpected traversal field: %+v", f)
	}
	if f.Writable() || f.Qualified() != "" {
		t.Fatalf("traversal fields are read-only")
	}
}

func TestDerivedFields(t *testing.T) {
	if Books.Rating.Writable() || !Books.Rating.ReadOnly {
		t.Errorf("book rating must be read-only")
	}
	if Borrows.IsOverdue.Writable() || Borrows.IsOverdue.Kind != Bool {
		t.Errorf("is_overdue must be a read-only bool")
	}
}

func TestChoices(t *testing.T) {
	if !Books.Genre.HasChoice("Science Fiction") || Books.Genre.HasChoice("Poetry") {
		t.Errorf("genre choices are wrong: %v", Books.Genre.Choices)
	}
	if Members.Role.HasChoice("Admin") {
		t.Errorf("Admin is not a member role")
	}
}
