// Package schema describes the persisted tables as typed field descriptors.
// Console configuration refers to these values instead of field name strings,
// so a renamed or removed column breaks the build rather than a page.
package schema

import "strings"

// Kind is the value type of a field, which decides how it is filtered and rendered
type Kind int

const (
	Text Kind = iota
	Int
	Float
	Bool
	Date
	DateTime
	Choice
	FK
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case Choice:
		return "choice"
	case FK:
		return "fk"
	default:
		return "text"
	}
}

// Join adds a related table under an alias
type Join struct {
	Table string
	Alias string
	On    string
}

// Clause renders the join for a LEFT JOIN
func (j Join) Clause() string {
	return j.Table + " AS " + j.Alias + " ON " + j.On
}

// Field describes one selectable value of a table. Related-entity fields
// (Name contains "__") and foreign key display values need Joins.
type Field struct {
	Name     string
	Label    string
	Table    string
	Column   string
	Expr     string
	Joins    []Join
	Kind     Kind
	Choices  []string
	Ref      string
	ReadOnly bool
}

// Qualified is the owning column as table.column. Derived fields have none.
func (f Field) Qualified() string {
	if f.Column == "" {
		return ""
	}
	return f.Table + "." + f.Column
}

// Writable reports whether the field maps to a stored column of its own table
func (f Field) Writable() bool {
	return f.Column != "" && !f.ReadOnly && !strings.Contains(f.Name, "__")
}

// HasChoice reports whether v is one of the declared choices
func (f Field) HasChoice(v string) bool {
	for _, c := range f.Choices {
		if c == v {
			return true
		}
	}
	return false
}

// Table is a persisted table and the fields a change view shows for it
type Table struct {
	Name    string
	Label   string
	Plural  string
	Columns []Field
}

// PK is the primary key column
func (t Table) PK() string {
	return t.Name + ".id"
}

func column(table, name, label string, kind Kind) Field {
	return Field{Name: name, Label: label, Table: table, Column: name, Expr: table + "." + name, Kind: kind}
}

func choice(table, name, label string, choices []string) Field {
	f := column(table, name, label, Choice)
	f.Choices = choices
	return f
}

// foreignKey is displayed through display, joined on alias, and filtered by id.
func foreignKey(table, name, label, ref, display string) Field {
	alias := name
	return Field{
		Name:   name,
		Label:  label,
		Table:  table,
		Column: name + "_id",
		Expr:   "NULLIF(" + strings.ReplaceAll(display, "$", alias) + ", '')",
		Joins:  []Join{joinTo(table, name, ref)},
		Kind:   FK,
		Ref:    ref,
	}
}

// related reaches column of the table behind the foreign key fk.
func related(fk Field, column, label string, kind Kind) Field {
	return Field{
		Name:     fk.Name + "__" + column,
		Label:    label,
		Table:    fk.Table,
		Expr:     fk.Name + "." + column,
		Joins:    fk.Joins,
		Kind:     kind,
		ReadOnly: true,
	}
}

func joinTo(table, name, ref string) Join {
	return Join{Table: ref, Alias: name, On: name + ".id = " + table + "." + name + "_id"}
}

func derived(table, name, label, expr string, kind Kind) Field {
	return Field{Name: name, Label: label, Table: table, Expr: expr, Kind: kind, ReadOnly: true}
}

const personName = "CONCAT_WS(' ', $.first_name, $.last_name)"
