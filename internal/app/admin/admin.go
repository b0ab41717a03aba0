// Package admin implements the administrative console: list views with
// search, filters, ordering and pagination, change views with inline child
// records, and bulk actions. Models are described by ModelAdmin values
// assembled into a Site at startup.
package admin

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/schema"
)

// DefaultPerPage is the list page size of models that do not set one
const DefaultPerPage = 100

// DeleteSelected is the built-in action available on every model
const DeleteSelected = "delete_selected"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store runs the statements the console builds
type Store interface {
	QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error)
	QueryCount(ctx context.Context, sql string, args ...any) (int64, error)
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

// Order is one term of an ordering
type Order struct {
	Field schema.Field
	Desc  bool
}

// Asc orders by f ascending
func Asc(f schema.Field) Order { return Order{Field: f} }

// Desc orders by f descending
func Desc(f schema.Field) Order { return Order{Field: f, Desc: true} }

func (o Order) String() string {
	if o.Desc {
		return "-" + o.Field.Name
	}
	return o.Field.Name
}

func (o Order) clause() string {
	if o.Desc {
		return o.Field.Expr + " DESC"
	}
	return o.Field.Expr + " ASC"
}

// InlineStyle is how a client lays out inline rows
type InlineStyle string

const (
	Stacked InlineStyle = "stacked"
	Tabular InlineStyle = "tabular"
)

// Inline shows the rows of Model whose FK points at the parent record
type Inline struct {
	Model string
	FK    schema.Field
	Style InlineStyle
	// Max caps the number of child rows; zero is unlimited.
	Max int
}

// Assignment sets Field to Value
type Assignment struct {
	Field schema.Field
	Value any
}

// Set builds an assignment
func Set(f schema.Field, v any) Assignment {
	return Assignment{Field: f, Value: v}
}

// Action is a bulk field-set applied to the selected rows in one statement
type Action struct {
	Name        string
	Description string
	Set         []Assignment
}

// ModelAdmin configures the console for one table
type ModelAdmin struct {
	Name         string
	Table        schema.Table
	ListDisplay  []schema.Field
	SearchFields []schema.Field
	ListFilter   []schema.Field
	Ordering     []Order
	PerPage      int
	Inlines      []Inline
	Actions      []Action
}

func (m *ModelAdmin) perPage() int {
	if m.PerPage <= 0 {
		return DefaultPerPage
	}
	return m.PerPage
}

func (m *ModelAdmin) action(name string) (Action, bool) {
	for _, a := range m.allActions() {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

func (m *ModelAdmin) allActions() []Action {
	actions := make([]Action, 0, len(m.Actions)+1)
	actions = append(actions, Action{
		Name:        DeleteSelected,
		Description: fmt.Sprintf("Delete selected %s", lower(m.Table.Plural)),
	})
	return append(actions, m.Actions...)
}

// sortable lists the fields that may appear in the "o" parameter
func (m *ModelAdmin) sortable() map[string]schema.Field {
	fields := make(map[string]schema.Field, len(m.ListDisplay)+len(m.Ordering))
	for _, f := range m.ListDisplay {
		fields[f.Name] = f
	}
	for _, o := range m.Ordering {
		fields[o.Field.Name] = o.Field
	}
	return fields
}

func (m *ModelAdmin) filter(name string) (schema.Field, bool) {
	for _, f := range m.ListFilter {
		if f.Name == name {
			return f, true
		}
	}
	return schema.Field{}, false
}
