package admin

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/app/schema"
)

// selection collects the expressions and joins of one SELECT
type selection struct {
	columns []string
	joins   []schema.Join
	seen    map[string]bool
}

func newSelection() *selection {
	return &selection{seen: map[string]bool{}}
}

// add selects f under its name. Foreign keys also select the raw id as <name>_id.
func (s *selection) add(f schema.Field) {
	s.columns = append(s.columns, fmt.Sprintf("%s AS %q", f.Expr, f.Name))
	if f.Kind == schema.FK {
		s.columns = append(s.columns, fmt.Sprintf("%s AS %q", f.Qualified(), f.Column))
	}
	s.join(f)
}

func (s *selection) join(f schema.Field) {
	for _, j := range f.Joins {
		if s.seen[j.Alias] {
			continue
		}
		s.seen[j.Alias] = true
		s.joins = append(s.joins, j)
	}
}

func (s *selection) apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	for _, j := range s.joins {
		b = b.LeftJoin(j.Clause())
	}
	return b
}

// render converts driver values to their wire form: dates become
// YYYY-MM-DD and the rest is left to encoding/json.
func render(fields []schema.Field, rows []map[string]any) []map[string]any {
	dates := map[string]bool{}
	for _, f := range fields {
		if f.Kind == schema.Date {
			dates[f.Name] = true
		}
	}
	for _, row := range rows {
		for name := range dates {
			if t, ok := row[name].(time.Time); ok {
				row[name] = models.DateOf(t).String()
			}
		}
	}
	return rows
}
