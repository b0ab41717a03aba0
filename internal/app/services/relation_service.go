package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/logger"
)

// Relation names a many-to-many set owned by one record
type Relation string

const (
	LibraryMembers Relation = "library_members"
	LibraryBooks   Relation = "library_books"
	EventBooks     Relation = "event_books"
)

type relationOps struct {
	owner string
	get   func(ctx context.Context, st Stores, id int64) error
	list  func(ctx context.Context, st Stores, id int64) ([]int64, error)
	set   func(ctx context.Context, st Stores, id int64, ids []int64) error
}

var relations = map[Relation]relationOps{
	LibraryMembers: {
		owner: "library",
		get: func(ctx context.Context, st Stores, id int64) error {
			_, err := st.Libraries.GetByID(ctx, id)
			return err
		},
		list: func(ctx context.Context, st Stores, id int64) ([]int64, error) {
			return st.Libraries.MemberIDs(ctx, id)
		},
		set: func(ctx context.Context, st Stores, id int64, ids []int64) error {
			return st.Libraries.SetMembers(ctx, id, ids)
		},
	},
	LibraryBooks: {
		owner: "library",
		get: func(ctx context.Context, st Stores, id int64) error {
			_, err := st.Libraries.GetByID(ctx, id)
			return err
		},
		list: func(ctx context.Context, st Stores, id int64) ([]int64, error) {
			return st.Libraries.BookIDs(ctx, id)
		},
		set: func(ctx context.Context, st Stores, id int64, ids []int64) error {
			return st.Libraries.SetBooks(ctx, id, ids)
		},
	},
	EventBooks: {
		owner: "event",
		get: func(ctx context.Context, st Stores, id int64) error {
			_, err := st.Events.GetByID(ctx, id)
			return err
		},
		list: func(ctx context.Context, st Stores, id int64) ([]int64, error) {
			return st.Events.BookIDs(ctx, id)
		},
		set: func(ctx context.Context, st Stores, id int64, ids []int64) error {
			return st.Events.SetBooks(ctx, id, ids)
		},
	},
}

// RelationService reads and replaces many-to-many sets
type RelationService struct {
	stores Stores
	tx     TxRunner
}

// NewRelationService creates a new RelationService
func NewRelationService(stores Stores, tx TxRunner) *RelationService {
	return &RelationService{stores: stores, tx: tx}
}

func lookupRelation(rel Relation) (relationOps, error) {
	ops, ok := relations[rel]
	if !ok {
		return relationOps{}, fmt.Errorf("unknown relation %q", rel)
	}
	return ops, nil
}

// List returns the ids currently linked to the owner record
func (s *RelationService) List(ctx context.Context, rel Relation, id int64) ([]int64, error) {
	ops, err := lookupRelation(rel)
	if err != nil {
		return nil, err
	}
	if err := ops.get(ctx, s.stores, id); err != nil {
		return nil, err
	}
	return ops.list(ctx, s.stores, id)
}

// Replace makes ids the complete set linked to the owner record, in one
// transaction, and returns the stored set.
func (s *RelationService) Replace(ctx context.Context, rel Relation, id int64, ids []int64) ([]int64, error) {
	ops, err := lookupRelation(rel)
	if err != nil {
		return nil, err
	}
	cleaned, err := uniqueIDs(ids)
	if err != nil {
		return nil, err
	}

	var stored []int64
	err = s.tx(ctx, func(ctx context.Context, tx Stores) error {
		if err := ops.get(ctx, tx, id); err != nil {
			return err
		}
		if err := ops.set(ctx, tx, id, cleaned); err != nil {
			return err
		}
		stored, err = ops.list(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("relation", string(rel)).Int64(ops.owner+"_id", id).Int("count", len(stored)).Msg("Relation replaced")
	return stored, nil
}

// uniqueIDs sorts and deduplicates ids. An empty set is allowed and clears
// the relation.
func uniqueIDs(ids []int64) ([]int64, error) {
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
