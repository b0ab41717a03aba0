package admin

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/logger"
)

// ActionResult reports how many selected rows an action changed
type ActionResult struct {
	Model    string `json:"model"`
	Action   string `json:"action"`
	Selected int    `json:"selected"`
	Affected int64  `json:"affected"`
}

// RunAction applies action to the rows of model with the given ids. Declared
// actions are a single UPDATE, delete_selected a single DELETE; rows that no
// longer exist are skipped.
func (s *Site) RunAction(ctx context.Context, model, action string, ids []int64) (*ActionResult, error) {
	m, err := s.lookup(model)
	if err != nil {
		return nil, err
	}
	a, ok := m.action(action)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", apperrors.ErrUnknownAction, action, m.Name)
	}

	selected, err := selectedIDs(ids)
	if err != nil {
		return nil, err
	}

	var (
		query string
		args  []any
	)
	if a.Name == DeleteSelected {
		query, args, err = psql.Delete(m.Table.Name).Where(squirrel.Eq{"id": selected}).ToSql()
	} else {
		b := psql.Update(m.Table.Name)
		for _, as := range a.Set {
			b = b.Set(as.Field.Column, as.Value)
		}
		query, args, err = b.Where(squirrel.Eq{"id": selected}).ToSql()
	}
	if err != nil {
		return nil, fmt.Errorf("building action %s: %w", a.Name, err)
	}

	affected, err := s.store.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running action %s on %s: %w", a.Name, m.Name, err)
	}

	logger.Info().
		Str("model", m.Name).
		Str("action", a.Name).
		Int("selected", len(selected)).
		Int64("affected", affected).
		Msg("Console action applied")

	return &ActionResult{Model: m.Name, Action: a.Name, Selected: len(selected), Affected: affected}, nil
}

// selectedIDs deduplicates and sorts ids, rejecting an empty or invalid set
func selectedIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNoSelection, apperrors.NewValidationError("ids", "select at least one record"))
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, apperrors.NewValidationError("ids", fmt.Sprintf("%d is not a valid id", id))
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
