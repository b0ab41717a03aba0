package admin

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/app/schema"
	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/helpers"
)

// Reserved list parameters; every other parameter names a filter.
const (
	SearchParam = "q"
	OrderParam  = "o"
	PageParam   = "page"
)

// Relative date filter values
const (
	DateToday     = "today"
	DatePast7Days = "past_7_days"
	DateThisMonth = "this_month"
	DateThisYear  = "this_year"
)

var datePresets = []string{DateToday, DatePast7Days, DateThisMonth, DateThisYear}

// Column is a list or detail column
type Column struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Sortable bool   `json:"sortable,omitempty"`
}

// FilterSpec describes a filter control
type FilterSpec struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Choices  []string `json:"choices,omitempty"`
	Selected string   `json:"selected,omitempty"`
}

// ChangeList is one page of a model's list view
type ChangeList struct {
	Model        string             `json:"model"`
	Label        string             `json:"label"`
	Columns      []Column           `json:"columns"`
	Rows         []map[string]any   `json:"rows"`
	SearchFields []string           `json:"search_fields,omitempty"`
	Query        string             `json:"query,omitempty"`
	Filters      []FilterSpec       `json:"filters,omitempty"`
	Ordering     []string           `json:"ordering"`
	Actions      []ActionInfo       `json:"actions"`
	Pagination   dto.PaginationInfo `json:"pagination"`
}

// ChangeList runs the list view of model with the given query parameters:
// q (search), o (ordering), page, and one parameter per active filter.
func (s *Site) ChangeList(ctx context.Context, model string, params url.Values) (*ChangeList, error) {
	m, err := s.lookup(model)
	if err != nil {
		return nil, err
	}

	where, selected, err := s.listWhere(m, params)
	if err != nil {
		return nil, err
	}
	ordering, err := listOrdering(m, params.Get(OrderParam))
	if err != nil {
		return nil, err
	}

	sel := newSelection()
	sel.add(schema.Field{Name: "id", Table: m.Table.Name, Column: "id", Expr: m.Table.PK(), Kind: schema.Int})
	for _, f := range m.ListDisplay {
		if f.Name != "id" {
			sel.add(f)
		}
	}
	for _, f := range m.SearchFields {
		sel.join(f)
	}
	for _, f := range m.ListFilter {
		sel.join(f)
	}
	for _, o := range ordering {
		sel.join(o.Field)
	}

	countSQL, countArgs, err := filtered(sel.apply(psql.Select("COUNT(*)").From(m.Table.Name)), where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building count for %s: %w", m.Name, err)
	}
	total, err := s.store.QueryCount(ctx, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", m.Name, err)
	}

	window := helpers.Paginate(total, helpers.ParsePage(params), m.perPage())

	q := filtered(sel.apply(psql.Select(sel.columns...).From(m.Table.Name)), where)
	for _, o := range ordering {
		q = q.OrderBy(o.clause())
	}
	rowsSQL, rowsArgs, err := q.Limit(uint64(window.Limit)).Offset(window.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list for %s: %w", m.Name, err)
	}
	rows, err := s.store.QueryRows(ctx, rowsSQL, rowsArgs...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", m.Name, err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	cl := &ChangeList{
		Model:      m.Name,
		Label:      m.Table.Plural,
		Rows:       render(m.ListDisplay, rows),
		Query:      strings.TrimSpace(params.Get(SearchParam)),
		Actions:    actionInfos(m),
		Pagination: window.Info,
	}
	sortable := m.sortable()
	for _, f := range m.ListDisplay {
		_, ok := sortable[f.Name]
		cl.Columns = append(cl.Columns, Column{Name: f.Name, Label: f.Label, Kind: f.Kind.String(), Sortable: ok})
	}
	for _, f := range m.SearchFields {
		cl.SearchFields = append(cl.SearchFields, f.Name)
	}
	for _, f := range m.ListFilter {
		cl.Filters = append(cl.Filters, filterSpec(f, selected[f.Name]))
	}
	for _, o := range ordering {
		cl.Ordering = append(cl.Ordering, o.String())
	}
	return cl, nil
}

func filtered(b squirrel.SelectBuilder, where squirrel.And) squirrel.SelectBuilder {
	if len(where) == 0 {
		return b
	}
	return b.Where(where)
}

// listWhere combines search terms and filters into one predicate
func (s *Site) listWhere(m *ModelAdmin, params url.Values) (squirrel.And, map[string]string, error) {
	where := squirrel.And{}
	selected := map[string]string{}

	if terms := strings.Fields(params.Get(SearchParam)); len(terms) > 0 && len(m.SearchFields) > 0 {
		for _, term := range terms {
			pattern := "%" + escapeLike(term) + "%"
			matches := squirrel.Or{}
			for _, f := range m.SearchFields {
				matches = append(matches, squirrel.Expr(f.Expr+"::text ILIKE ?", pattern))
			}
			where = append(where, matches)
		}
	}

	names := make([]string, 0, len(params))
	for name := range params {
		switch name {
		case SearchParam, OrderParam, PageParam:
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := params[name]
		f, ok := m.filter(name)
		if !ok {
			return nil, nil, apperrors.NewValidationError(name, fmt.Sprintf("%s cannot be filtered by %q", m.Name, name))
		}
		value := strings.TrimSpace(values[0])
		if value == "" {
			continue
		}
		pred, err := s.filterPredicate(f, value)
		if err != nil {
			return nil, nil, err
		}
		where = append(where, pred)
		selected[name] = value
	}
	return where, selected, nil
}

func (s *Site) filterPredicate(f schema.Field, value string) (squirrel.Sqlizer, error) {
	invalid := func() error {
		return apperrors.NewValidationError(f.Name, fmt.Sprintf("%q is not a valid value for %s", value, f.Name))
	}

	switch f.Kind {
	case schema.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalid()
		}
		return squirrel.Eq{f.Expr: b}, nil
	case schema.Choice:
		if !f.HasChoice(value) {
			return nil, apperrors.NewValidationError(f.Name, fmt.Sprintf("%q is not one of the available choices", value))
		}
		return squirrel.Eq{f.Expr: value}, nil
	case schema.FK:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return nil, invalid()
		}
		return squirrel.Eq{f.Qualified(): id}, nil
	case schema.Int:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, invalid()
		}
		return squirrel.Eq{f.Expr: n}, nil
	case schema.Float:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, invalid()
		}
		return squirrel.Eq{f.Expr: n}, nil
	case schema.Date, schema.DateTime:
		from, to, err := s.dateRange(value)
		if err != nil {
			return nil, invalid()
		}
		if f.Kind == schema.Date {
			return squirrel.And{
				squirrel.GtOrEq{f.Expr: models.DateOf(from)},
				squirrel.Lt{f.Expr: models.DateOf(to)},
			}, nil
		}
		return squirrel.And{squirrel.GtOrEq{f.Expr: from}, squirrel.Lt{f.Expr: to}}, nil
	default:
		return squirrel.Eq{f.Expr: value}, nil
	}
}

// dateRange resolves a date filter value to a half-open [from, to) range
func (s *Site) dateRange(value string) (time.Time, time.Time, error) {
	today := helpers.StartOfDay(s.now())
	switch value {
	case DateToday:
		return today, today.AddDate(0, 0, 1), nil
	case DatePast7Days:
		return today.AddDate(0, 0, -7), today.AddDate(0, 0, 1), nil
	case DateThisMonth:
		start := helpers.StartOfMonth(today)
		return start, start.AddDate(0, 1, 0), nil
	case DateThisYear:
		start := helpers.StartOfYear(today)
		return start, start.AddDate(1, 0, 0), nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, today.Location())
	return start, start.AddDate(0, 0, 1), nil
}

// listOrdering parses "o" or falls back to the default ordering. The primary
// key is always the last term so pages are stable.
func listOrdering(m *ModelAdmin, param string) ([]Order, error) {
	ordering := m.Ordering
	if param = strings.TrimSpace(param); param != "" {
		sortable := m.sortable()
		ordering = nil
		for _, term := range strings.Split(param, ",") {
			term = strings.TrimSpace(term)
			desc := strings.HasPrefix(term, "-")
			f, ok := sortable[strings.TrimPrefix(term, "-")]
			if !ok {
				return nil, apperrors.NewValidationError(OrderParam, fmt.Sprintf("cannot order %s by %q", m.Name, term))
			}
			ordering = append(ordering, Order{Field: f, Desc: desc})
		}
	}

	out := make([]Order, 0, len(ordering)+1)
	for _, o := range ordering {
		if o.Field.Expr == m.Table.PK() {
			return append(out, o), nil
		}
		out = append(out, o)
	}
	return append(out, Asc(schema.Field{Name: "id", Table: m.Table.Name, Column: "id", Expr: m.Table.PK(), Kind: schema.Int})), nil
}

func filterSpec(f schema.Field, selected string) FilterSpec {
	spec := FilterSpec{Name: f.Name, Label: f.Label, Kind: f.Kind.String(), Selected: selected}
	switch f.Kind {
	case schema.Choice:
		spec.Choices = f.Choices
	case schema.Bool:
		spec.Choices = []string{"true", "false"}
	case schema.Date, schema.DateTime:
		spec.Choices = datePresets
	}
	return spec
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
