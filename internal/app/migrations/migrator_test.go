package migrations

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestPendingSortsSQLFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/010_later.sql":  {Data: []byte("SELECT 1;")},
		"sql/002_next.sql":   {Data: []byte("SELECT 1;")},
		"sql/001_init.sql":   {Data: []byte("SELECT 1;")},
		"sql/README.md":      {Data: []byte("notes")},
		"sql/nested/003.sql": {Data: []byte("SELECT 1;")},
	}

	got, err := Pending(fsys, "sql")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"001_init.sql", "002_next.sql", "010_later.sql"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Pending() = %v, want %v", got, want)
	}
}

func TestVersion(t *testing.T) {
	if v := Version("sql/001_init.sql"); v != "001" {
		t.Fatalf("Version() = %q, want 001", v)
	}
}

func TestEmbeddedSchema(t *testing.T) {
	files, err := Pending(Files(), "sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 || files[0] != "001_init.sql" {
		t.Fatalf("embedded migrations = %v", files)
	}

	content, err := fs.ReadFile(Files(), "sql/001_init.sql")
	if err != nil {
		t.Fatal(err)
	}
	schema := string(content)
	for _, table := range []string{
		"authors", "author_details", "categories", "libraries", "members", "books",
		"reviews", "borrows", "posts", "events", "event_participants",
		"library_members", "library_books", "event_books", "admin_users",
	} {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema does not create table %s", table)
		}
	}
	for _, constraint := range []string{
		"books_title_author_key", "categories_name_key", "members_email_key",
		"members_age_check", "authors_rating_check", "reviews_rating_check",
		"ON DELETE SET NULL",
	} {
		if !strings.Contains(schema, constraint) {
			t.Errorf("schema is missing %s", constraint)
		}
	}
}
