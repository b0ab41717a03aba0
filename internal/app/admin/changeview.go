package admin

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/schema"
	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// InlineRows are the child rows of one inline
type InlineRows struct {
	Model   string           `json:"model"`
	Label   string           `json:"label"`
	Style   InlineStyle      `json:"style"`
	Max     int              `json:"max,omitempty"`
	FK      string           `json:"fk"`
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// ChangeView is one record with its inline children
type ChangeView struct {
	Model   string         `json:"model"`
	Label   string         `json:"label"`
	ID      int64          `json:"id"`
	Fields  []Column       `json:"fields"`
	Record  map[string]any `json:"record"`
	Inlines []InlineRows   `json:"inlines,omitempty"`
}

// ChangeView loads record id of model, including read-only derived fields
// and the rows of every inline.
func (s *Site) ChangeView(ctx context.Context, model string, id int64) (*ChangeView, error) {
	m, err := s.lookup(model)
	if err != nil {
		return nil, err
	}

	rows, err := s.selectRows(ctx, m.Table, squirrel.Eq{m.Table.PK(): id}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("loading %s %d: %w", m.Name, id, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", m.Table.Label, id))
	}

	view := &ChangeView{
		Model:  m.Name,
		Label:  m.Table.Label,
		ID:     id,
		Fields: columns(m.Table.Columns),
		Record: rows[0],
	}

	for _, in := range m.Inlines {
		child := s.admins[in.Model]
		childRows, err := s.selectRows(ctx, child.Table, squirrel.Eq{in.FK.Qualified(): id}, child.Ordering, uint64(in.Max))
		if err != nil {
			return nil, fmt.Errorf("loading %s inline of %s %d: %w", in.Model, m.Name, id, err)
		}
		view.Inlines = append(view.Inlines, InlineRows{
			Model:   child.Name,
			Label:   child.Table.Plural,
			Style:   in.Style,
			Max:     in.Max,
			FK:      in.FK.Name,
			Columns: columns(child.Table.Columns),
			Rows:    childRows,
		})
	}
	return view, nil
}

func (s *Site) selectRows(ctx context.Context, table schema.Table, where squirrel.Sqlizer, ordering []Order, limit uint64) ([]map[string]any, error) {
	sel := newSelection()
	for _, f := range table.Columns {
		sel.add(f)
	}
	for _, o := range ordering {
		sel.join(o.Field)
	}

	q := sel.apply(psql.Select(sel.columns...).From(table.Name)).Where(where)
	for _, o := range ordering {
		q = q.OrderBy(o.clause())
	}
	q = q.OrderBy(table.PK() + " ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.store.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return render(table.Columns, rows), nil
}

func columns(fields []schema.Field) []Column {
	out := make([]Column, len(fields))
	for i, f := range fields {
		out[i] = Column{Name: f.Name, Label: f.Label, Kind: f.Kind.String()}
	}
	return out
}
