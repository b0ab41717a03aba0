package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/librarium/internal/app/schema"
	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// Site is the set of registered models. It is built once and shared
// read-only by the HTTP layer.
type Site struct {
	store  Store
	admins map[string]*ModelAdmin
	order  []string
	now    func() time.Time
}

// Option configures a Site
type Option func(*Site)

// WithClock replaces the clock used by relative date filters
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// NewSite registers admins and checks their configuration against the schema
func NewSite(store Store, admins []*ModelAdmin, opts ...Option) (*Site, error) {
	s := &Site{
		store:  store,
		admins: make(map[string]*ModelAdmin, len(admins)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	var errs []error
	for _, m := range admins {
		if m.Name == "" {
			errs = append(errs, errors.New("model admin without a name"))
			continue
		}
		if _, dup := s.admins[m.Name]; dup {
			errs = append(errs, fmt.Errorf("model %q registered twice", m.Name))
			continue
		}
		s.admins[m.Name] = m
		s.order = append(s.order, m.Name)
	}
	for _, name := range s.order {
		errs = append(errs, s.check(s.admins[name])...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid console configuration: %w", err)
	}
	return s, nil
}

func (s *Site) check(m *ModelAdmin) []error {
	var errs []error
	owned := func(kind string, f schema.Field) {
		if f.Table != m.Table.Name {
			errs = append(errs, fmt.Errorf("%s: %s field %q belongs to %q", m.Name, kind, f.Name, f.Table))
		}
	}

	for _, f := range m.ListDisplay {
		owned("list_display", f)
	}
	for _, f := range m.SearchFields {
		owned("search", f)
	}
	for _, f := range m.ListFilter {
		owned("filter", f)
	}
	for _, o := range m.Ordering {
		owned("ordering", o.Field)
	}

	seen := map[string]bool{DeleteSelected: true}
	for _, a := range m.Actions {
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate action %q", m.Name, a.Name))
		}
		seen[a.Name] = true
		if len(a.Set) == 0 {
			errs = append(errs, fmt.Errorf("%s: action %q sets nothing", m.Name, a.Name))
		}
		for _, as := range a.Set {
			if !as.Field.Writable() || as.Field.Table != m.Table.Name {
				errs = append(errs, fmt.Errorf("%s: action %q cannot set %q", m.Name, a.Name, as.Field.Name))
			}
			if as.Field.Kind == schema.Choice {
				if v, ok := as.Value.(string); !ok || !as.Field.HasChoice(v) {
					errs = append(errs, fmt.Errorf("%s: action %q sets %q to an undeclared choice %v", m.Name, a.Name, as.Field.Name, as.Value))
				}
			}
		}
	}

	for _, in := range m.Inlines {
		child, ok := s.admins[in.Model]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: inline model %q is not registered", m.Name, in.Model))
			continue
		}
		if in.FK.Kind != schema.FK || in.FK.Table != child.Table.Name || in.FK.Ref != m.Table.Name {
			errs = append(errs, fmt.Errorf("%s: inline %q must use a foreign key of %s pointing at %s", m.Name, in.Model, child.Table.Name, m.Table.Name))
		}
	}
	return errs
}

func (s *Site) lookup(name string) (*ModelAdmin, error) {
	m, ok := s.admins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownModel, name)
	}
	return m, nil
}

// ModelInfo summarises a registered model for the console index
type ModelInfo struct {
	Name    string       `json:"name"`
	Label   string       `json:"label"`
	Plural  string       `json:"plural"`
	PerPage int          `json:"per_page"`
	Actions []ActionInfo `json:"actions"`
	Inlines []string     `json:"inlines,omitempty"`
}

// ActionInfo names an action a client can offer
type ActionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Index lists the registered models in registration order
func (s *Site) Index() []ModelInfo {
	out := make([]ModelInfo, 0, len(s.order))
	for _, name := range s.order {
		m := s.admins[name]
		info := ModelInfo{
			Name:    m.Name,
			Label:   m.Table.Label,
			Plural:  m.Table.Plural,
			PerPage: m.perPage(),
			Actions: actionInfos(m),
		}
		for _, in := range m.Inlines {
			info.Inlines = append(info.Inlines, in.Model)
		}
		out = append(out, info)
	}
	return out
}

// Model returns the configuration registered under name
func (s *Site) Model(name string) (*ModelAdmin, error) {
	return s.lookup(name)
}

func actionInfos(m *ModelAdmin) []ActionInfo {
	actions := m.allActions()
	out := make([]ActionInfo, len(actions))
	for i, a := range actions {
		out[i] = ActionInfo{Name: a.Name, Description: a.Description}
	}
	return out
}

func lower(s string) string {
	return strings.ToLower(s)
}
